package store

import (
	"database/sql"

	"github.com/chitramadarakhandi/minimart/internal/models"
)

const productColumns = `id, name, COALESCE(category, '') as category, COALESCE(description, '') as description, price, stock_qty, COALESCE(image_path, '') as image_path, created_at`

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (name, category, description, price, stock_qty, image_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, p.Name, p.Category, p.Description, p.Price, p.StockQty, p.ImagePath)
	return err
}

// SearchProducts matches name or category against the query string.
// An empty query returns the most recently added products, capped at limit.
func (s *Store) SearchProducts(q string, limit int) ([]models.Product, error) {
	if q == "" {
		return s.queryProducts(`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT ?`, limit)
	}
	pattern := "%" + q + "%"
	return s.queryProducts(`SELECT `+productColumns+` FROM products WHERE name LIKE ? OR category LIKE ? ORDER BY created_at DESC`, pattern, pattern)
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products ORDER BY name`)
}

// GetRecentProducts lists newest first, for the admin manage view.
func (s *Store) GetRecentProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	var p models.Product
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.StockQty, &p.ImagePath, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes the row unconditionally. Existing order_details
// keep their product_id; nothing guards the reference.
func (s *Store) DeleteProduct(id int) error {
	_, err := s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (s *Store) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.StockQty, &p.ImagePath, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
