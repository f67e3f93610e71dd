package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"etiket-museum/internal/booking"
	"etiket-museum/internal/models"
	"etiket-museum/internal/session"
)

type calendarView struct {
	Base
	Month             booking.Month
	Tickets           []models.Ticket
	Quantities        map[int]int
	Subtotal          float64
	SelectedDate      time.Time
	SelectedDateValue string
}

func (v calendarView) PrevURL() string {
	y, m := booking.PrevMonth(v.Month.Year, v.Month.Month)
	return calendarURL(y, m, v.SelectedDateValue)
}

func (v calendarView) NextURL() string {
	y, m := booking.NextMonth(v.Month.Year, v.Month.Month)
	return calendarURL(y, m, v.SelectedDateValue)
}

// DayURL links a calendar cell to the same page with that date selected.
func (v calendarView) DayURL(date string) string {
	return calendarURL(v.Month.Year, v.Month.Month, date)
}

func calendarURL(year int, month time.Month, date string) string {
	q := url.Values{}
	q.Set("y", strconv.Itoa(year))
	q.Set("m", strconv.Itoa(int(month)))
	if date != "" {
		q.Set("date", date)
	}
	return "/beli/calender?" + q.Encode()
}

// Calendar renders the booking page: month grid, ticket quantities, and the
// running subtotal. View state lives entirely in the query string.
func (h *Handlers) Calendar(w http.ResponseWriter, r *http.Request) {
	h.renderCalendar(w, r, http.StatusOK, "", nil)
}

func (h *Handlers) renderCalendar(w http.ResponseWriter, r *http.Request, status int, errMsg string, sel booking.Selection) {
	claims := session.FromContext(r.Context())
	now := time.Now()

	year := now.Year()
	month := now.Month()
	if y, err := strconv.Atoi(r.FormValue("y")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(r.FormValue("m")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	selected := r.FormValue("date")
	if selected == "" {
		selected = r.FormValue("visitDate")
	}
	if sel == nil {
		sel = selectionFromForm(r)
	}

	view := calendarView{
		Base:              h.base(r, "Pesan Tiket"),
		Month:             booking.BuildMonth(year, month, now, selected, claims != nil),
		Quantities:        sel,
		SelectedDateValue: selected,
	}
	view.Error = errMsg

	if t, err := time.Parse("2006-01-02", selected); err == nil {
		view.SelectedDate = t
	}

	tickets, err := h.cachedTickets(r.Context())
	if err != nil {
		h.Logger.Warn("WEB", fmt.Sprintf("calendar: tickets unavailable: %v", err))
		if view.Error == "" {
			view.Error = "Daftar tiket tidak dapat dimuat. Coba lagi nanti."
		}
	}
	view.Tickets = tickets
	view.Subtotal = booking.Subtotal(tickets, sel)

	h.Renderer.Render(w, status, "calender.html", view)
}

// selectionFromForm collects qty_<ticketID> fields, clamping negatives.
func selectionFromForm(r *http.Request) booking.Selection {
	sel := booking.Selection{}
	r.ParseForm()
	for key, values := range r.Form {
		if !strings.HasPrefix(key, "qty_") || len(values) == 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(key, "qty_"))
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(values[0])
		if err != nil {
			continue
		}
		sel.Set(id, qty)
	}
	return sel
}

// Pay validates the booking and forwards the browser to the payment
// gateway URL returned by the backend.
func (h *Handlers) Pay(w http.ResponseWriter, r *http.Request) {
	claims := session.FromContext(r.Context())
	sel := selectionFromForm(r)
	visitDate := r.PostFormValue("visitDate")

	key := "pay:" + strconv.Itoa(userID(claims))
	if !h.Actions.TryAcquire(key) {
		h.renderCalendar(w, r, http.StatusConflict, "Pembayaran sedang diproses. Mohon tunggu.", sel)
		return
	}
	defer h.Actions.Release(key)

	tickets, err := h.cachedTickets(r.Context())
	if err != nil {
		h.renderCalendar(w, r, http.StatusBadGateway, "Daftar tiket tidak dapat dimuat. Coba lagi nanti.", sel)
		return
	}

	redirectURL, err := h.Booking.Initiate(r.Context(), claims, session.Token(r), visitDate, tickets, sel)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		h.renderCalendar(w, r, http.StatusBadRequest, paymentErrorMessage(err), sel)
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func paymentErrorMessage(err error) string {
	switch err {
	case booking.ErrNotLoggedIn, booking.ErrNoDate, booking.ErrPastDate, booking.ErrNoTickets:
		return err.Error()
	}
	return apiMessage(err, "Pembayaran tidak dapat diproses. Coba lagi nanti.")
}

func userID(claims *session.Claims) int {
	if claims == nil {
		return 0
	}
	return claims.UserID
}
