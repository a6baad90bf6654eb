package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"otakufest/internal/api"
	"otakufest/internal/middleware"
	"otakufest/internal/models"
	"otakufest/internal/store"
)

// AuthHandler handles login, registration, and logout
type AuthHandler struct {
	auth     api.AuthAPI
	sessions store.SessionStore
	csrf     *middleware.CSRFMiddleware
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(auth api.AuthAPI, sessions store.SessionStore, csrf *middleware.CSRFMiddleware) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		csrf:     csrf,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session.Authenticated() {
		http.Redirect(w, r, "/tickets", http.StatusSeeOther)
		return
	}
	h.renderLoginPage(w, r, "", "")
}

func (h *AuthHandler) renderLoginPage(w http.ResponseWriter, r *http.Request, username, errMsg string) {
	errorBlock := ""
	if errMsg != "" {
		errorBlock = fmt.Sprintf(`<div class="bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded mb-4">%s</div>`, esc(errMsg))
	}

	main := fmt.Sprintf(`
		<div class="max-w-md mx-auto px-4 py-16">
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-8">
				<h1 class="text-2xl font-bold text-gray-900 mb-6">Login</h1>
				%s
				<form method="POST" action="/login">
					<input type="hidden" name="csrf_token" value="%s">
					<label class="block text-sm text-gray-700 mb-1">Username</label>
					<input type="text" name="username" value="%s" class="form-input w-full mb-4" required>
					<label class="block text-sm text-gray-700 mb-1">Password</label>
					<input type="password" name="password" class="form-input w-full mb-6" required>
					<button type="submit" class="w-full bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">Login</button>
				</form>
				<p class="text-sm text-gray-600 mt-4">Belum punya akun? <a href="/register" class="text-pink-600">Daftar</a></p>
			</div>
		</div>`,
		errorBlock, esc(h.csrf.TokenFromSession(r)), esc(username))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Login", renderUserNav(nil, h.csrf.TokenFromSession(r)), main))
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderLoginPage(w, r, username, "Username dan password wajib diisi.")
		return
	}

	session, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusUnprocessableEntity)
			h.renderLoginPage(w, r, username, "Username atau password salah.")
			return
		}
		log.Printf("login failed for %s: %v", username, err)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		h.renderLoginPage(w, r, username, "Login gagal, coba lagi nanti.")
		return
	}

	if err := h.sessions.Set(w, r, session); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderRegisterPage(w, r, api.RegisterRequest{}, "")
}

func (h *AuthHandler) renderRegisterPage(w http.ResponseWriter, r *http.Request, form api.RegisterRequest, errMsg string) {
	errorBlock := ""
	if errMsg != "" {
		errorBlock = fmt.Sprintf(`<div class="bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded mb-4">%s</div>`, esc(errMsg))
	}

	main := fmt.Sprintf(`
		<div class="max-w-md mx-auto px-4 py-16">
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-8">
				<h1 class="text-2xl font-bold text-gray-900 mb-6">Daftar Akun</h1>
				%s
				<form method="POST" action="/register">
					<input type="hidden" name="csrf_token" value="%s">
					<label class="block text-sm text-gray-700 mb-1">Username</label>
					<input type="text" name="username" value="%s" class="form-input w-full mb-4" required>
					<label class="block text-sm text-gray-700 mb-1">Email</label>
					<input type="email" name="email" value="%s" class="form-input w-full mb-4" required>
					<label class="block text-sm text-gray-700 mb-1">Nama depan</label>
					<input type="text" name="first_name" value="%s" class="form-input w-full mb-4">
					<label class="block text-sm text-gray-700 mb-1">Nama belakang</label>
					<input type="text" name="last_name" value="%s" class="form-input w-full mb-4">
					<label class="block text-sm text-gray-700 mb-1">Password</label>
					<input type="password" name="password" class="form-input w-full mb-6" required>
					<button type="submit" class="w-full bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">Daftar</button>
				</form>
				<p class="text-sm text-gray-600 mt-4">Sudah punya akun? <a href="/login" class="text-pink-600">Login</a></p>
			</div>
		</div>`,
		errorBlock, esc(h.csrf.TokenFromSession(r)),
		esc(form.Username), esc(form.Email), esc(form.FirstName), esc(form.LastName))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Daftar", renderUserNav(nil, h.csrf.TokenFromSession(r)), main))
}

// Register handles the registration form submission. A successful
// registration lands on the login page rather than logging in
// directly; the backend does not return a token on signup.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form := api.RegisterRequest{
		Username:  strings.TrimSpace(r.FormValue("username")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Password:  r.FormValue("password"),
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
	}

	var errMsg string
	switch {
	case form.Username == "" || form.Email == "" || form.Password == "":
		errMsg = "Username, email, dan password wajib diisi."
	case !isValidEmail(form.Email):
		errMsg = "Format email tidak valid."
	case len(form.Password) < 8:
		errMsg = "Password minimal 8 karakter."
	}
	if errMsg != "" {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.renderRegisterPage(w, r, form, errMsg)
		return
	}

	if err := h.auth.Register(r.Context(), form); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusUnprocessableEntity)
			h.renderRegisterPage(w, r, form, apiErr.Message)
			return
		}
		log.Printf("registration failed for %s: %v", form.Username, err)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		h.renderRegisterPage(w, r, form, "Pendaftaran gagal, coba lagi nanti.")
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout invalidates the backend token and clears the local session.
// The local session is cleared even when the backend call fails; the
// visitor asked to leave.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session != nil {
		if err := h.auth.Logout(r.Context(), session.Token); err != nil {
			log.Printf("backend logout failed: %v", err)
		}
	}

	if err := h.sessions.Clear(w, r); err != nil {
		http.Error(w, "Failed to clear session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
