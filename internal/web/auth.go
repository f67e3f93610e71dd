package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"etiket-museum/internal/backend"
	"etiket-museum/internal/session"
)

type loginView struct {
	Base
	Email     string
	GoogleURL string
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if claims := session.FromContext(r.Context()); claims != nil {
		http.Redirect(w, r, homeFor(claims.Role), http.StatusFound)
		return
	}
	view := loginView{Base: h.base(r, "Masuk"), GoogleURL: h.Backend.GoogleAuthURL()}
	view.Info = r.URL.Query().Get("info")
	h.Renderer.Render(w, http.StatusOK, "login.html", view)
}

// Login exchanges credentials for a backend token and stores it as the
// session cookie. Admins land on the dashboard, buyers on the home page.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	result, err := h.Backend.Login(r.Context(), email, password)
	if err != nil {
		h.Logger.Warn("AUTH", fmt.Sprintf("login failed for %s: %v", email, err))
		view := loginView{Base: h.base(r, "Masuk"), Email: email, GoogleURL: h.Backend.GoogleAuthURL()}
		view.Error = apiMessage(err, "Email atau kata sandi salah.")
		h.Renderer.Render(w, http.StatusUnauthorized, "login.html", view)
		return
	}

	h.Store.Set(w, result.Token, result.Role)
	h.Events.Publish("user.login", email, "session", "")
	http.Redirect(w, r, homeFor(result.Role), http.StatusSeeOther)
}

func homeFor(role string) string {
	if role == session.RoleAdmin {
		return "/admin"
	}
	return "/"
}

type registerView struct {
	Base
	FullName    string
	Email       string
	PhoneNumber string
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "register.html", registerView{Base: h.base(r, "Daftar")})
}

// Register checks password confirmation locally, then hands off to the
// backend and forwards to the verification page.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	view := registerView{
		Base:        h.base(r, "Daftar"),
		FullName:    r.PostFormValue("fullName"),
		Email:       r.PostFormValue("email"),
		PhoneNumber: r.PostFormValue("phoneNumber"),
	}

	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirmPassword") {
		view.Error = "Konfirmasi kata sandi tidak cocok."
		h.Renderer.Render(w, http.StatusBadRequest, "register.html", view)
		return
	}

	result, err := h.Backend.Register(r.Context(), backend.RegisterInput{
		FullName:    view.FullName,
		Email:       view.Email,
		PhoneNumber: view.PhoneNumber,
		Password:    password,
	})
	if err != nil {
		view.Error = apiMessage(err, "Pendaftaran gagal. Coba lagi nanti.")
		h.Renderer.Render(w, http.StatusBadRequest, "register.html", view)
		return
	}

	h.Events.Publish("user.registered", view.Email, "user", strconv.Itoa(result.UserID))
	dest := fmt.Sprintf("/verify-email?userId=%d&email=%s", result.UserID, url.QueryEscape(view.Email))
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

type verifyView struct {
	Base
	UserID string
	Email  string
}

func (h *Handlers) VerifyEmailPage(w http.ResponseWriter, r *http.Request) {
	view := verifyView{
		Base:   h.base(r, "Verifikasi Email"),
		UserID: r.URL.Query().Get("userId"),
		Email:  r.URL.Query().Get("email"),
	}
	h.Renderer.Render(w, http.StatusOK, "verify_email.html", view)
}

func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	view := verifyView{
		Base:   h.base(r, "Verifikasi Email"),
		UserID: r.PostFormValue("userId"),
		Email:  r.PostFormValue("email"),
	}

	userID, err := strconv.Atoi(view.UserID)
	if err != nil {
		view.Error = "Permintaan tidak valid."
		h.Renderer.Render(w, http.StatusBadRequest, "verify_email.html", view)
		return
	}

	msg, err := h.Backend.VerifyEmail(r.Context(), userID, r.PostFormValue("code"))
	if err != nil {
		view.Error = apiMessage(err, "Kode verifikasi salah atau sudah kedaluwarsa.")
		h.Renderer.Render(w, http.StatusBadRequest, "verify_email.html", view)
		return
	}

	if msg == "" {
		msg = "Email berhasil diverifikasi. Silakan masuk."
	}
	http.Redirect(w, r, "/login?info="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (h *Handlers) ResendVerification(w http.ResponseWriter, r *http.Request) {
	view := verifyView{
		Base:   h.base(r, "Verifikasi Email"),
		UserID: r.PostFormValue("userId"),
		Email:  r.PostFormValue("email"),
	}

	msg, err := h.Backend.ResendVerification(r.Context(), view.Email)
	if err != nil {
		view.Error = apiMessage(err, "Kode tidak dapat dikirim ulang. Coba lagi nanti.")
	} else {
		if msg == "" {
			msg = "Kode verifikasi baru telah dikirim."
		}
		view.Info = msg
	}
	h.Renderer.Render(w, http.StatusOK, "verify_email.html", view)
}

type resetView struct {
	Base
	Email    string
	CodeSent bool
}

func (h *Handlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "reset_password.html", resetView{Base: h.base(r, "Atur Ulang Kata Sandi")})
}

// ResetPassword is a two-step form: first request a code by email, then
// submit the code with the new password.
func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	view := resetView{Base: h.base(r, "Atur Ulang Kata Sandi"), Email: r.PostFormValue("email")}

	switch r.PostFormValue("step") {
	case "request":
		msg, err := h.Backend.ResendVerification(r.Context(), view.Email)
		if err != nil {
			view.Error = apiMessage(err, "Kode tidak dapat dikirim. Periksa alamat email Anda.")
			h.Renderer.Render(w, http.StatusBadRequest, "reset_password.html", view)
			return
		}
		if msg == "" {
			msg = "Kode verifikasi telah dikirim ke email Anda."
		}
		view.Info = msg
		view.CodeSent = true
		h.Renderer.Render(w, http.StatusOK, "reset_password.html", view)

	case "confirm":
		newPassword := r.PostFormValue("newPassword")
		if newPassword != r.PostFormValue("confirmPassword") {
			view.Error = "Konfirmasi kata sandi tidak cocok."
			view.CodeSent = true
			h.Renderer.Render(w, http.StatusBadRequest, "reset_password.html", view)
			return
		}
		msg, err := h.Backend.ResetPassword(r.Context(), view.Email, r.PostFormValue("code"), newPassword)
		if err != nil {
			view.Error = apiMessage(err, "Kata sandi tidak dapat diubah. Periksa kode verifikasi Anda.")
			view.CodeSent = true
			h.Renderer.Render(w, http.StatusBadRequest, "reset_password.html", view)
			return
		}
		if msg == "" {
			msg = "Kata sandi berhasil diubah. Silakan masuk."
		}
		http.Redirect(w, r, "/login?info="+url.QueryEscape(msg), http.StatusSeeOther)

	default:
		http.Redirect(w, r, "/reset-password", http.StatusSeeOther)
	}
}

// GoogleCallback consumes the token minted by the backend after the OAuth
// dance and establishes the session the same way password login does.
func (h *Handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	claims, err := h.Store.Decode(token)
	if err != nil {
		h.Logger.Warn("AUTH", fmt.Sprintf("google callback with undecodable token: %v", err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	h.Store.Set(w, token, claims.Role)
	h.Events.Publish("user.login", claims.Email, "session", "")
	http.Redirect(w, r, homeFor(claims.Role), http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Store.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func apiMessage(err error, fallback string) string {
	if apiErr, ok := err.(*backend.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
