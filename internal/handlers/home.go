package handlers

import (
	"net/http"

	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/sessions"
)

type HomeHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Index shows the search bar plus matching products, or the twelve most
// recent when no query is given.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	products, err := h.Store.SearchProducts(q, 12)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, loggedIn := currentIdentity(session)
	data := map[string]interface{}{
		"Products": products,
		"Query":    q,
		"Flashes":  GetFlash(session),
		"Identity": ident,
		"LoggedIn": loggedIn,
		"IsAdmin":  loggedIn && ident.Role == "admin",
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
