package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"etiket-museum/internal/logger"
	"etiket-museum/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var dayNames = [...]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

// MonthName returns the Indonesian name for a month.
func MonthName(m time.Month) string {
	return monthNames[int(m)-1]
}

// Rupiah formats an amount as "Rp 10.000".
func Rupiah(amount float64) string {
	n := int64(amount)
	s := fmt.Sprintf("%d", n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return "Rp " + strings.Join(parts, ".")
}

// Tanggal formats a date as "2 September 2026".
func Tanggal(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}

// Base carries the fields every page template needs.
type Base struct {
	Title  string
	Claims *session.Claims
	Error  string
	Info   string
}

func (b Base) LoggedIn() bool { return b.Claims != nil }

func (b Base) IsAdmin() bool {
	return b.Claims != nil && b.Claims.Role == session.RoleAdmin
}

type Renderer struct {
	templates map[string]*template.Template
	logger    *logger.Logger
}

func NewRenderer(log *logger.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"rupiah":    Rupiah,
		"tanggal":   Tanggal,
		"monthName": MonthName,
		"dayName":   func(i int) string { return dayNames[i] },
		"add":       func(a, b int) int { return a + b },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}

	pages, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template), logger: log}
	for _, page := range pages {
		name := page.Name()
		if name == "layout.html" {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Render writes a page. Template failures log and fall back to a plain 500
// so a broken page never takes the shell down with a partial write.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := r.templates[name]
	if !ok {
		r.logger.Error("RENDER", "unknown template: "+name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		r.logger.Error("RENDER", fmt.Sprintf("failed to render %s: %v", name, err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, buf.String())
}
