package models

import (
	"time"
)

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`    // bcrypt hash, never rendered
	Role         string `json:"role"` // "customer" or "admin"
}

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	StockQty    int       `json:"stock_qty"`
	ImagePath   string    `json:"image_path"` // filename under the upload dir, empty if none
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID          int         `json:"id"`
	UserID      int         `json:"user_id"`
	Customer    string      `json:"customer"` // joined user name, for admin listings
	Status      string      `json:"status"`   // "Pending", "Confirmed"
	TotalAmount float64     `json:"total_amount"`
	OrderDate   time.Time   `json:"order_date"`
	Lines       []OrderLine `json:"lines"`
}

// OrderLine is immutable once written; Price is the unit price captured
// at checkout time, independent of later product price changes.
type OrderLine struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"` // joined for display
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Payment struct {
	ID      int     `json:"id"`
	OrderID int     `json:"order_id"`
	Amount  float64 `json:"amount"`
	Mode    string  `json:"mode"`
	Status  string  `json:"status"` // always "Success" here, no real gateway
}
