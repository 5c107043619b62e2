package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chitramadarakhandi/minimart/internal/cart"
	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type CheckoutHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Form shows the order summary before placing it. Routes to here are
// wrapped in RequireUser.
func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	c := sessionCart(session)
	if c.Empty() {
		session.AddFlash(FlashMessage{Type: "warning", Message: "Cart empty"})
		session.Save(r, w)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	entries, total := c.Entries()
	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	ident, _ := currentIdentity(session)
	data := map[string]interface{}{
		"Entries":   entries,
		"Total":     total,
		"Flashes":   GetFlash(session),
		"Identity":  ident,
		"LoggedIn":  true,
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Place runs the checkout transaction. The cart is only cleared after
// the store commits; any failure leaves both the database and the cart
// untouched.
func (h *CheckoutHandler) Place(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	ident, ok := currentIdentity(session)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	c := sessionCart(session)
	if c.Empty() {
		session.AddFlash(FlashMessage{Type: "warning", Message: "Cart empty"})
		session.Save(r, w)
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	form := parseCheckoutForm(r)
	entries, _ := c.Entries()
	lines := make([]store.CheckoutLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, store.CheckoutLine{ProductID: e.ProductID, Quantity: e.Qty, Price: e.Price})
	}

	orderID, total, err := h.Store.PlaceOrder(ident.UserID, lines, form.PaymentMode)
	if err != nil {
		slog.Error("Checkout failed", "user_id", ident.UserID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error processing order: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	session.Values["cart"] = cart.Cart{}
	slog.Info("Order placed", "order_id", orderID, "user_id", ident.UserID, "total", total)
	session.AddFlash(FlashMessage{Type: "success", Message: fmt.Sprintf("Order placed successfully! Order ID: %d", orderID)})
	session.Save(r, w)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}
