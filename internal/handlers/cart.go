package handlers

import (
	"net/http"
	"strconv"

	"github.com/chitramadarakhandi/minimart/internal/cart"
	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type CartHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// sessionCart pulls the cart out of the session, handing back an empty
// one when none is stored yet.
func sessionCart(session *sessions.Session) cart.Cart {
	if c, ok := session.Values["cart"].(cart.Cart); ok {
		return c
	}
	return cart.Cart{}
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	entries, total := sessionCart(session).Entries()

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	ident, loggedIn := currentIdentity(session)
	data := map[string]interface{}{
		"Entries":   entries,
		"Total":     total,
		"Flashes":   GetFlash(session),
		"Identity":  ident,
		"LoggedIn":  loggedIn,
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Add caches the product's name and current price in the session cart.
// Repeated adds of the same product merge quantities; the price stays
// the one cached on the first add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	// The session must be saved before any redirect: headers written
	// after WriteHeader are discarded, cookie included.
	session, _ := h.SessionStore.Get(r, sessionName)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		session.Save(r, w)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	qty := 1
	if raw := r.FormValue("qty"); raw != "" {
		if q, err := strconv.Atoi(raw); err == nil && q > 0 {
			qty = q
		}
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if product == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found"})
		session.Save(r, w)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	c := sessionCart(session)
	c.Add(product.ID, product.Name, product.Price, qty)
	session.Values["cart"] = c

	session.AddFlash(FlashMessage{Type: "success", Message: "Added to cart"})
	session.Save(r, w)
	dest := r.Referer()
	if dest == "" {
		dest = "/products"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c := sessionCart(session)
	c.Remove(id)
	session.Values["cart"] = c
	session.Save(r, w)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
