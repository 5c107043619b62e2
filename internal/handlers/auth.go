package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const sessionName = "shop-session"

type AuthHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// identity is the session-held view of the logged-in user.
type identity struct {
	UserID int
	Name   string
	Role   string
}

func currentIdentity(session *sessions.Session) (identity, bool) {
	id, ok := session.Values["user_id"].(int)
	if !ok {
		return identity{}, false
	}
	name, _ := session.Values["name"].(string)
	role, _ := session.Values["role"].(string)
	return identity{UserID: id, Name: name, Role: role}, true
}

// RequireUser gates a route on a logged-in session. Unauthenticated
// requests are sent to the login page with the original destination in
// the next parameter, before any store access happens.
func (h *AuthHandler) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, sessionName)
		if _, ok := currentIdentity(session); !ok {
			session.AddFlash(FlashMessage{Type: "error", Message: "Please log in to continue."})
			session.Save(r, w)
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin gates a route on the admin role.
func (h *AuthHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, sessionName)
		ident, ok := currentIdentity(session)
		if !ok {
			session.AddFlash(FlashMessage{Type: "error", Message: "Please log in to continue."})
			session.Save(r, w)
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		if ident.Role != "admin" {
			slog.Warn("Admin route denied", "user_id", ident.UserID, "path", r.URL.Path)
			session.AddFlash(FlashMessage{Type: "error", Message: "You are not allowed to access that page."})
			session.Save(r, w)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "register.html")
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	form, err := parseRegisterForm(r)
	if err != nil {
		for _, msg := range formErrorMessages(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	// Everyone registers as a customer; admins are seeded via the CLI.
	if err := h.Store.CreateUser(form.Name, form.Email, string(hash), "customer"); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Registered successfully, please login"})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "login.html")
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	form, err := parseLoginForm(r)
	if err != nil {
		for _, msg := range formErrorMessages(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.Store.GetUserByEmail(form.Email)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid credentials"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["user_id"] = user.ID
	session.Values["name"] = user.Name
	session.Values["role"] = user.Role
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Name + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "user_id", user.ID, "role", user.Role)
	http.Redirect(w, r, loginDestination(r, user.Role), http.StatusSeeOther)
}

// loginDestination honors a safe next parameter, then falls back to the
// role's landing page.
func loginDestination(r *http.Request, role string) string {
	next := r.FormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	if role == "admin" {
		return "/admin"
	}
	return "/"
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	for key := range session.Values {
		delete(session.Values, key)
	}
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderAuthPage(w http.ResponseWriter, r *http.Request, name string) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Next":      r.URL.Query().Get("next"),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
