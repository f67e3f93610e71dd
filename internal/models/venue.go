package models

// Venue is a museum collection/venue entry. The photo field holds a
// server-hosted filename; compose the full URL with backend.Client.PhotoURL.
type Venue struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Photo       string `json:"photo"`
}

// VenueInput is the multipart payload for the venue create/update forms.
// Photo is optional on update; leaving it empty keeps the stored file.
type VenueInput struct {
	Name        string
	Description string
	Year        int
	PhotoName   string
	Photo       []byte
}
