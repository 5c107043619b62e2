package handlers

import (
	"net/http"

	"github.com/chitramadarakhandi/minimart/internal/models"
	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/sessions"
)

type OrderHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// List shows the caller's own orders; admins see everyone's. Routed
// behind RequireUser.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, ok := currentIdentity(session)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var orders []models.Order
	var err error
	if ident.Role == "admin" {
		orders, err = h.Store.GetAllOrders()
	} else {
		orders, err = h.Store.GetOrdersByUser(ident.UserID)
	}
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Orders":   orders,
		"Flashes":  GetFlash(session),
		"Identity": ident,
		"LoggedIn": true,
		"IsAdmin":  ident.Role == "admin",
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
