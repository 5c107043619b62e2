package store

import "database/sql"

type DashboardStats struct {
	TotalProducts  int
	TotalOrders    int
	TotalCustomers int
	TotalRevenue   float64
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	stats.TotalCustomers, err = s.CountCustomers()
	if err != nil {
		return nil, err
	}

	stats.TotalRevenue, err = s.TotalRevenue()
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// TotalRevenue sums every successfully settled payment.
func (s *Store) TotalRevenue() (float64, error) {
	var revenue float64
	err := s.DB.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'Success'`).Scan(&revenue)
	return revenue, err
}
