package store

import (
	"database/sql"
	"fmt"

	"github.com/chitramadarakhandi/minimart/internal/models"
)

// CheckoutLine is one cart entry at checkout time. Price is the unit
// price cached in the session when the item was added, not the current
// catalog price.
type CheckoutLine struct {
	ProductID int
	Quantity  int
	Price     float64
}

// PlaceOrder materializes a cart into an order inside one transaction:
// a Pending order row, one order_details row per line carrying the
// session-cached price, the authoritative total computed from those
// rows, a simulated Success payment for that total, and the transition
// to Confirmed. Any failure rolls the whole thing back; the caller only
// clears its cart after a nil return.
func (s *Store) PlaceOrder(userID int, lines []CheckoutLine, paymentMode string) (orderID int, total float64, err error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(`INSERT INTO orders (user_id, status) VALUES (?, 'Pending')`, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("create order: %w", err)
	}
	id64, err := res.LastInsertId()
	if err != nil {
		return 0, 0, fmt.Errorf("create order: %w", err)
	}
	orderID = int(id64)

	for _, line := range lines {
		_, err = tx.Exec(`INSERT INTO order_details (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
			orderID, line.ProductID, line.Quantity, line.Price)
		if err != nil {
			return 0, 0, fmt.Errorf("create order line: %w", err)
		}
	}

	if err = calcOrderTotal(tx, orderID); err != nil {
		return 0, 0, err
	}
	if err = tx.QueryRow(`SELECT total_amount FROM orders WHERE id = ?`, orderID).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("read order total: %w", err)
	}

	// Simulated payment, no gateway behind it.
	_, err = tx.Exec(`INSERT INTO payments (order_id, amount, payment_mode, payment_status) VALUES (?, ?, ?, 'Success')`,
		orderID, total, paymentMode)
	if err != nil {
		return 0, 0, fmt.Errorf("record payment: %w", err)
	}

	_, err = tx.Exec(`UPDATE orders SET status = 'Confirmed' WHERE id = ?`, orderID)
	if err != nil {
		return 0, 0, fmt.Errorf("confirm order: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit checkout: %w", err)
	}
	return orderID, total, nil
}

// calcOrderTotal derives orders.total_amount from the order's own
// order_details rows, so a client-supplied total can never land in the
// orders table. Runs inside the checkout transaction.
func calcOrderTotal(tx *sql.Tx, orderID int) error {
	_, err := tx.Exec(`
		UPDATE orders
		SET total_amount = COALESCE((
			SELECT SUM(price * quantity) FROM order_details WHERE order_id = ?
		), 0)
		WHERE id = ?`, orderID, orderID)
	if err != nil {
		return fmt.Errorf("compute order total: %w", err)
	}
	return nil
}

// GetOrdersByUser returns a user's orders newest first, each with its lines.
func (s *Store) GetOrdersByUser(userID int) ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, u.name, o.status, o.total_amount, o.order_date
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE o.user_id = ?
		ORDER BY o.order_date DESC, o.id DESC
	`
	return s.queryOrders(query, userID)
}

// GetAllOrders returns every order with the owning customer's name,
// newest first. Admin-only callers.
func (s *Store) GetAllOrders() ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, u.name, o.status, o.total_amount, o.order_date
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.order_date DESC, o.id DESC
	`
	return s.queryOrders(query)
}

func (s *Store) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Customer, &o.Status, &o.TotalAmount, &o.OrderDate); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := s.getOrderLines(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (s *Store) getOrderLines(orderID int) ([]models.OrderLine, error) {
	query := `
		SELECT od.id, od.order_id, od.product_id, COALESCE(p.name, '(removed product)'), od.quantity, od.price
		FROM order_details od
		LEFT JOIN products p ON od.product_id = p.id
		WHERE od.order_id = ?
		ORDER BY od.id
	`
	rows, err := s.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetPayment returns the payment recorded for an order, or nil if none.
func (s *Store) GetPayment(orderID int) (*models.Payment, error) {
	query := `SELECT id, order_id, amount, payment_mode, payment_status FROM payments WHERE order_id = ?`
	var p models.Payment
	err := s.DB.QueryRow(query, orderID).Scan(&p.ID, &p.OrderID, &p.Amount, &p.Mode, &p.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
