package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"etiket-museum/internal/cache"
	"etiket-museum/internal/models"
	"etiket-museum/internal/session"
)

type dashboardView struct {
	Base
	TicketCount int
	VenueCount  int
	OrderCount  int
}

// Dashboard shows collection counts. A failing fetch zeroes its counter and
// surfaces one inline error rather than failing the page.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	token := session.Token(r)
	view := dashboardView{Base: h.base(r, "Dashboard")}

	tickets, err := h.Backend.ListTickets(r.Context(), token)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		view.Error = "Sebagian data tidak dapat dimuat."
	}
	view.TicketCount = len(tickets)

	venues, err := h.Backend.ListVenues(r.Context(), token)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		view.Error = "Sebagian data tidak dapat dimuat."
	}
	view.VenueCount = len(venues)

	orders, err := h.Backend.ListOrders(r.Context(), token)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		view.Error = "Sebagian data tidak dapat dimuat."
	}
	view.OrderCount = len(orders)

	h.Renderer.Render(w, http.StatusOK, "admin_dashboard.html", view)
}

type adminTicketsView struct {
	Base
	Tickets []models.Ticket
	Query   string
	Editing *models.Ticket
}

func (h *Handlers) AdminTickets(w http.ResponseWriter, r *http.Request) {
	h.renderAdminTickets(w, r, http.StatusOK, "", "")
}

func (h *Handlers) renderAdminTickets(w http.ResponseWriter, r *http.Request, status int, errMsg, info string) {
	tickets, err := h.Backend.ListTickets(r.Context(), session.Token(r))
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		errMsg = "Data tiket tidak dapat dimuat. Coba lagi nanti."
	}

	view := adminTicketsView{Base: h.base(r, "Data Tiket"), Query: r.URL.Query().Get("q")}
	view.Error = errMsg
	view.Info = info
	view.Tickets = filterTickets(tickets, view.Query)

	if editID, err := strconv.Atoi(r.URL.Query().Get("edit")); err == nil {
		for i := range tickets {
			if tickets[i].ID == editID {
				view.Editing = &tickets[i]
				break
			}
		}
	}

	h.Renderer.Render(w, status, "admin_tiket.html", view)
}

// filterTickets is a case-insensitive substring match over the displayed
// fields.
func filterTickets(tickets []models.Ticket, query string) []models.Ticket {
	if query == "" {
		return tickets
	}
	q := strings.ToLower(query)
	var out []models.Ticket
	for _, t := range tickets {
		if strings.Contains(strings.ToLower(t.Type), q) ||
			strings.Contains(strings.ToLower(t.Code), q) ||
			strings.Contains(strings.ToLower(t.Terms), q) {
			out = append(out, t)
		}
	}
	return out
}

// SaveTicket handles both create and update; an id field means update.
func (h *Handlers) SaveTicket(w http.ResponseWriter, r *http.Request) {
	token := session.Token(r)
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil || price < 0 {
		h.renderAdminTickets(w, r, http.StatusBadRequest, "Harga tidak valid.", "")
		return
	}

	input := models.TicketInput{
		Code:  r.PostFormValue("code"),
		Type:  r.PostFormValue("type"),
		Price: price,
		Terms: r.PostFormValue("terms"),
	}
	if input.Code == "" {
		h.renderAdminTickets(w, r, http.StatusBadRequest, "Kode tiket wajib diisi.", "")
		return
	}
	if input.Type == "" {
		h.renderAdminTickets(w, r, http.StatusBadRequest, "Jenis tiket wajib diisi.", "")
		return
	}

	claims := session.FromContext(r.Context())
	if id, err := strconv.Atoi(r.PostFormValue("id")); err == nil {
		if _, err := h.Backend.UpdateTicket(r.Context(), token, id, input); err != nil {
			if h.sessionExpired(w, r, err) {
				return
			}
			h.renderAdminTickets(w, r, http.StatusBadGateway, apiMessage(err, "Tiket tidak dapat diperbarui."), "")
			return
		}
		h.Events.Publish("ticket.updated", actorOf(claims), "ticket", strconv.Itoa(id))
	} else {
		created, err := h.Backend.CreateTicket(r.Context(), token, input)
		if err != nil {
			if h.sessionExpired(w, r, err) {
				return
			}
			h.renderAdminTickets(w, r, http.StatusBadGateway, apiMessage(err, "Tiket tidak dapat disimpan."), "")
			return
		}
		h.Events.Publish("ticket.created", actorOf(claims), "ticket", strconv.Itoa(created.ID))
	}

	h.Cache.Invalidate(r.Context(), cache.KeyTickets)
	http.Redirect(w, r, "/admin/data-tiket", http.StatusSeeOther)
}

func (h *Handlers) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Backend.DeleteTicket(r.Context(), session.Token(r), id); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.renderAdminTickets(w, r, http.StatusBadGateway, apiMessage(err, "Tiket tidak dapat dihapus."), "")
		return
	}

	claims := session.FromContext(r.Context())
	h.Events.Publish("ticket.deleted", actorOf(claims), "ticket", strconv.Itoa(id))
	h.Cache.Invalidate(r.Context(), cache.KeyTickets)
	http.Redirect(w, r, "/admin/data-tiket", http.StatusSeeOther)
}

type adminVenuesView struct {
	Base
	Venues    []models.Venue
	Query     string
	Editing   *models.Venue
	PhotoBase string
}

func (h *Handlers) AdminVenues(w http.ResponseWriter, r *http.Request) {
	h.renderAdminVenues(w, r, http.StatusOK, "")
}

func (h *Handlers) renderAdminVenues(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	venues, err := h.Backend.ListVenues(r.Context(), session.Token(r))
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		errMsg = "Data koleksi tidak dapat dimuat. Coba lagi nanti."
	}

	view := adminVenuesView{
		Base:      h.base(r, "Data Koleksi"),
		Query:     r.URL.Query().Get("q"),
		PhotoBase: h.Backend.UploadsBase(),
	}
	view.Error = errMsg
	view.Venues = filterVenues(venues, view.Query)

	if editID, err := strconv.Atoi(r.URL.Query().Get("edit")); err == nil {
		for i := range venues {
			if venues[i].ID == editID {
				view.Editing = &venues[i]
				break
			}
		}
	}

	h.Renderer.Render(w, status, "admin_koleksi.html", view)
}

func filterVenues(venues []models.Venue, query string) []models.Venue {
	if query == "" {
		return venues
	}
	q := strings.ToLower(query)
	var out []models.Venue
	for _, v := range venues {
		if strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Description), q) ||
			strings.Contains(strconv.Itoa(v.Year), q) {
			out = append(out, v)
		}
	}
	return out
}

// maxPhotoSize bounds the multipart memory buffer for venue uploads.
const maxPhotoSize = 10 << 20

// SaveVenue creates or updates a venue, passing the uploaded photo through
// to the backend as-is.
func (h *Handlers) SaveVenue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		h.renderAdminVenues(w, r, http.StatusBadRequest, "Formulir tidak valid.")
		return
	}

	year, err := strconv.Atoi(r.PostFormValue("year"))
	if err != nil {
		h.renderAdminVenues(w, r, http.StatusBadRequest, "Tahun tidak valid.")
		return
	}

	input := models.VenueInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Year:        year,
	}
	if input.Name == "" {
		h.renderAdminVenues(w, r, http.StatusBadRequest, "Nama koleksi wajib diisi.")
		return
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photo, err := io.ReadAll(file)
		if err != nil {
			h.renderAdminVenues(w, r, http.StatusBadRequest, "Foto tidak dapat dibaca.")
			return
		}
		input.PhotoName = header.Filename
		input.Photo = photo
	}

	token := session.Token(r)
	claims := session.FromContext(r.Context())

	if id, err := strconv.Atoi(r.PostFormValue("id")); err == nil {
		if err := h.Backend.UpdateVenue(r.Context(), token, id, input); err != nil {
			if h.sessionExpired(w, r, err) {
				return
			}
			h.renderAdminVenues(w, r, http.StatusBadGateway, apiMessage(err, "Koleksi tidak dapat diperbarui."))
			return
		}
		h.Events.Publish("venue.updated", actorOf(claims), "venue", strconv.Itoa(id))
	} else {
		if input.Photo == nil {
			h.renderAdminVenues(w, r, http.StatusBadRequest, "Foto koleksi wajib diunggah.")
			return
		}
		if err := h.Backend.CreateVenue(r.Context(), token, input); err != nil {
			if h.sessionExpired(w, r, err) {
				return
			}
			h.renderAdminVenues(w, r, http.StatusBadGateway, apiMessage(err, "Koleksi tidak dapat disimpan."))
			return
		}
		h.Events.Publish("venue.created", actorOf(claims), "venue", "")
	}

	h.Cache.Invalidate(r.Context(), cache.KeyVenues)
	http.Redirect(w, r, "/admin/data-koleksi", http.StatusSeeOther)
}

func (h *Handlers) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Backend.DeleteVenue(r.Context(), session.Token(r), id); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.renderAdminVenues(w, r, http.StatusBadGateway, apiMessage(err, "Koleksi tidak dapat dihapus."))
		return
	}

	claims := session.FromContext(r.Context())
	h.Events.Publish("venue.deleted", actorOf(claims), "venue", strconv.Itoa(id))
	h.Cache.Invalidate(r.Context(), cache.KeyVenues)
	http.Redirect(w, r, "/admin/data-koleksi", http.StatusSeeOther)
}

type orderRow struct {
	Order  models.Order
	Status models.AttendanceStatus
}

func (r orderRow) CanUpdate() bool { return !r.Status.IsTerminal() }

func (r orderRow) StatusClass() string {
	switch r.Status {
	case models.StatusArrived:
		return "bg-green-100 text-green-700"
	case models.StatusExpired:
		return "bg-stone-200 text-stone-600"
	case models.StatusCancelled:
		return "bg-red-100 text-red-700"
	default:
		return "bg-amber-100 text-amber-700"
	}
}

type adminOrdersView struct {
	Base
	Orders []orderRow
	Query  string
}

// AdminOrders lists bookings with the locally derived status: an order past
// its visit date that never checked in shows as EXPIRED.
func (h *Handlers) AdminOrders(w http.ResponseWriter, r *http.Request) {
	h.renderAdminOrders(w, r, http.StatusOK, "")
}

func (h *Handlers) renderAdminOrders(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	orders, err := h.Backend.ListOrders(r.Context(), session.Token(r))
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		errMsg = "Data pemesanan tidak dapat dimuat. Coba lagi nanti."
	}

	view := adminOrdersView{Base: h.base(r, "Data Pemesanan"), Query: r.URL.Query().Get("q")}
	view.Error = errMsg

	now := time.Now()
	for _, o := range filterOrders(orders, view.Query) {
		view.Orders = append(view.Orders, orderRow{Order: o, Status: o.EffectiveStatus(now)})
	}

	h.Renderer.Render(w, status, "admin_pemesanan.html", view)
}

func filterOrders(orders []models.Order, query string) []models.Order {
	if query == "" {
		return orders
	}
	q := strings.ToLower(query)
	var out []models.Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.OrderCode), q) ||
			strings.Contains(strings.ToLower(o.VisitorName), q) {
			out = append(out, o)
		}
	}
	return out
}

// UpdateOrderStatus marks an order ARRIVED or CANCELLED. Terminal orders
// are rejected locally before any backend call.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := models.AttendanceStatus(r.PostFormValue("status"))
	if status != models.StatusArrived && status != models.StatusCancelled {
		h.renderAdminOrders(w, r, http.StatusBadRequest, "Status tidak valid.")
		return
	}

	key := "order-status:" + strconv.Itoa(id)
	if !h.Actions.TryAcquire(key) {
		h.renderAdminOrders(w, r, http.StatusConflict, "Perubahan status sedang diproses.")
		return
	}
	defer h.Actions.Release(key)

	token := session.Token(r)
	order, ok := h.findOrder(w, r, token, id)
	if !ok {
		return
	}
	if !order.CanUpdate(time.Now()) {
		h.renderAdminOrders(w, r, http.StatusBadRequest, "Pemesanan sudah berstatus akhir dan tidak dapat diubah.")
		return
	}

	if err := h.Backend.UpdateOrderStatus(r.Context(), token, id, status); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.renderAdminOrders(w, r, http.StatusBadGateway, apiMessage(err, "Status tidak dapat diubah."))
		return
	}

	claims := session.FromContext(r.Context())
	h.Events.Publish("order.status_changed", actorOf(claims), "order", strconv.Itoa(id))
	http.Redirect(w, r, "/admin/data-pemesanan", http.StatusSeeOther)
}

// DownloadOrderTicket proxies the backend's ticket file for an order.
func (h *Handlers) DownloadOrderTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data, contentType, err := h.Backend.DownloadTicket(r.Context(), session.Token(r), id)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.renderAdminOrders(w, r, http.StatusBadGateway, apiMessage(err, "Tiket tidak dapat diunduh."))
		return
	}

	if contentType == "" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=tiket-%d.pdf", id))
	w.Write(data)
}

// OrderPass renders the locally generated visit pass: the encrypted QR as
// a printable PDF.
func (h *Handlers) OrderPass(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, ok := h.findOrder(w, r, session.Token(r), id)
	if !ok {
		return
	}

	qr, err := h.Pass.QRPNG(*order)
	if err != nil {
		h.Logger.Error("PASS", fmt.Sprintf("qr generation failed for order %d: %v", id, err))
		h.renderAdminOrders(w, r, http.StatusInternalServerError, "QR tiket tidak dapat dibuat.")
		return
	}

	pdf, err := h.Pass.PDF(*order, qr)
	if err != nil {
		h.Logger.Warn("PASS", fmt.Sprintf("pdf generation failed for order %d, serving qr png: %v", id, err))
		w.Header().Set("Content-Type", "image/png")
		w.Write(qr)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pass-%s.pdf", order.OrderCode))
	w.Write(pdf)
}

// findOrder fetches the order list and picks one by id, handling the
// session-expired and not-found paths.
func (h *Handlers) findOrder(w http.ResponseWriter, r *http.Request, token string, id int) (*models.Order, bool) {
	orders, err := h.Backend.ListOrders(r.Context(), token)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return nil, false
		}
		h.renderAdminOrders(w, r, http.StatusBadGateway, "Data pemesanan tidak dapat dimuat. Coba lagi nanti.")
		return nil, false
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], true
		}
	}
	http.NotFound(w, r)
	return nil, false
}

func actorOf(claims *session.Claims) string {
	if claims == nil {
		return ""
	}
	return claims.Email
}
