package handlers

import (
	"net/http"
	"strconv"

	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type CatalogHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, loggedIn := currentIdentity(session)
	data := map[string]interface{}{
		"Products":  products,
		"Flashes":   GetFlash(session),
		"Identity":  ident,
		"LoggedIn":  loggedIn,
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("product_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, loggedIn := currentIdentity(session)
	data := map[string]interface{}{
		"Product":   product,
		"Flashes":   GetFlash(session),
		"Identity":  ident,
		"LoggedIn":  loggedIn,
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
