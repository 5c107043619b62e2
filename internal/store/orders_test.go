package store

import (
	"testing"

	"github.com/chitramadarakhandi/minimart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory DB.
	s.DB.SetMaxOpenConns(1)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store, email string) int {
	t.Helper()
	require.NoError(t, s.CreateUser("Test User", email, "not-a-real-hash", "customer"))
	u, err := s.GetUserByEmail(email)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.ID
}

func seedProduct(t *testing.T, s *Store, name string, price float64) int {
	t.Helper()
	require.NoError(t, s.CreateProduct(&models.Product{Name: name, Category: "misc", Price: price, StockQty: 10}))
	products, err := s.GetRecentProducts()
	require.NoError(t, err)
	for _, p := range products {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("seeded product %q not found", name)
	return 0
}

func TestPlaceOrderConfirmsWithMatchingTotals(t *testing.T) {
	s := newTestStore(t)
	userID := seedUser(t, s, "buyer@example.com")
	productA := seedProduct(t, s, "Product A", 10.00)
	productB := seedProduct(t, s, "Product B", 5.00)

	lines := []CheckoutLine{
		{ProductID: productA, Quantity: 2, Price: 10.00},
		{ProductID: productB, Quantity: 1, Price: 5.00},
	}

	orderID, total, err := s.PlaceOrder(userID, lines, "Card")
	require.NoError(t, err)
	assert.Equal(t, 25.00, total)

	orders, err := s.GetOrdersByUser(userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, "Confirmed", orders[0].Status)
	assert.Equal(t, 25.00, orders[0].TotalAmount)

	var lineSum float64
	require.Len(t, orders[0].Lines, 2)
	for _, l := range orders[0].Lines {
		lineSum += l.Price * float64(l.Quantity)
	}
	assert.Equal(t, orders[0].TotalAmount, lineSum)

	payment, err := s.GetPayment(orderID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, "Success", payment.Status)
	assert.Equal(t, "Card", payment.Mode)
	assert.Equal(t, 25.00, payment.Amount)
}

func TestPlaceOrderUsesCachedPriceNotCatalogPrice(t *testing.T) {
	s := newTestStore(t)
	userID := seedUser(t, s, "buyer@example.com")
	productID := seedProduct(t, s, "Product A", 10.00)

	// Catalog price changed after the item went into the cart; the
	// cached price must win.
	_, err := s.DB.Exec(`UPDATE products SET price = 99.99 WHERE id = ?`, productID)
	require.NoError(t, err)

	_, total, err := s.PlaceOrder(userID, []CheckoutLine{{ProductID: productID, Quantity: 3, Price: 10.00}}, "UPI")
	require.NoError(t, err)
	assert.Equal(t, 30.00, total)
}

func TestPlaceOrderRollsBackOnPaymentFailure(t *testing.T) {
	s := newTestStore(t)
	userID := seedUser(t, s, "buyer@example.com")
	productID := seedProduct(t, s, "Product A", 10.00)

	// Force a store failure between order line creation and payment
	// creation: with no payments table the payment insert fails.
	_, err := s.DB.Exec(`DROP TABLE payments`)
	require.NoError(t, err)

	_, _, err = s.PlaceOrder(userID, []CheckoutLine{{ProductID: productID, Quantity: 1, Price: 10.00}}, "Card")
	require.Error(t, err)

	var orderCount, lineCount int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&orderCount))
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM order_details`).Scan(&lineCount))
	assert.Zero(t, orderCount, "rolled-back order must not exist")
	assert.Zero(t, lineCount, "rolled-back order lines must not exist")
}

func TestGetAllOrdersIncludesCustomerNames(t *testing.T) {
	s := newTestStore(t)
	userID := seedUser(t, s, "buyer@example.com")
	productID := seedProduct(t, s, "Product A", 10.00)

	_, _, err := s.PlaceOrder(userID, []CheckoutLine{{ProductID: productID, Quantity: 1, Price: 10.00}}, "Card")
	require.NoError(t, err)

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Test User", orders[0].Customer)
}

func TestOrderLinesSurviveProductDeletion(t *testing.T) {
	s := newTestStore(t)
	userID := seedUser(t, s, "buyer@example.com")
	productID := seedProduct(t, s, "Product A", 10.00)

	orderID, _, err := s.PlaceOrder(userID, []CheckoutLine{{ProductID: productID, Quantity: 1, Price: 10.00}}, "Card")
	require.NoError(t, err)
	require.NoError(t, s.DeleteProduct(productID))

	orders, err := s.GetOrdersByUser(userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, orderID, orders[0].Lines[0].OrderID)
	assert.Equal(t, "(removed product)", orders[0].Lines[0].ProductName)
}

func TestTotalRevenueSumsSuccessfulPayments(t *testing.T) {
	s := newTestStore(t)
	userID := seedUser(t, s, "buyer@example.com")
	productA := seedProduct(t, s, "Product A", 10.00)
	productB := seedProduct(t, s, "Product B", 5.00)

	_, _, err := s.PlaceOrder(userID, []CheckoutLine{{ProductID: productA, Quantity: 2, Price: 10.00}}, "Card")
	require.NoError(t, err)
	_, _, err = s.PlaceOrder(userID, []CheckoutLine{{ProductID: productB, Quantity: 1, Price: 5.00}}, "COD")
	require.NoError(t, err)

	revenue, err := s.TotalRevenue()
	require.NoError(t, err)
	assert.Equal(t, 25.00, revenue)

	stats, err := s.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 25.00, stats.TotalRevenue)
}
