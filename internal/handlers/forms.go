package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Each form-handling endpoint gets an explicit schema, validated before
// any store access.
var validate = validator.New()

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type checkoutForm struct {
	PaymentMode string // free-text label, defaults to "Card"
}

type productForm struct {
	Name        string  `validate:"required"`
	Category    string
	Description string
	Price       float64 `validate:"gte=0"`
	StockQty    int     `validate:"gte=0"`
}

func parseRegisterForm(r *http.Request) (registerForm, error) {
	f := registerForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Password: r.FormValue("password"),
	}
	return f, validate.Struct(f)
}

func parseLoginForm(r *http.Request) (loginForm, error) {
	f := loginForm{
		Email:    strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Password: r.FormValue("password"),
	}
	return f, validate.Struct(f)
}

func parseCheckoutForm(r *http.Request) checkoutForm {
	mode := strings.TrimSpace(r.FormValue("payment_mode"))
	if mode == "" {
		mode = "Card"
	}
	return checkoutForm{PaymentMode: mode}
}

func parseProductForm(r *http.Request) (productForm, error) {
	f := productForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, fmt.Errorf("invalid price %q", raw)
		}
		f.Price = price
	}
	if raw := r.FormValue("stock_qty"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("invalid stock quantity %q", raw)
		}
		f.StockQty = qty
	}
	return f, validate.Struct(f)
}

// formErrorMessages turns validator failures into user-facing text.
func formErrorMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	var messages []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fe.Field()+" is required.")
		case "email":
			messages = append(messages, "Please enter a valid email address.")
		case "gte":
			messages = append(messages, fe.Field()+" must not be negative.")
		default:
			messages = append(messages, fe.Field()+" is invalid.")
		}
	}
	return messages
}
