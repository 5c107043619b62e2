// Package cart holds the session-scoped shopping cart. A Cart lives
// only inside the signed session cookie; it is never written to the
// database.
package cart

import (
	"encoding/gob"
	"sort"
	"strconv"
)

func init() {
	gob.Register(Cart{})
}

// Line is one cart entry. Price is snapshotted when the product is
// added, so later catalog price changes do not touch it.
type Line struct {
	Name  string
	Price float64
	Qty   int
}

// Cart maps product id (as a string, for stable gob encoding) to a Line.
type Cart map[string]Line

// Add merges the quantity into an existing entry for the same product,
// keeping the originally cached name and price, or inserts a new entry.
func (c Cart) Add(productID int, name string, price float64, qty int) {
	key := strconv.Itoa(productID)
	if existing, ok := c[key]; ok {
		existing.Qty += qty
		c[key] = existing
		return
	}
	c[key] = Line{Name: name, Price: price, Qty: qty}
}

// Remove deletes the entry if present. Removing an absent id is a no-op.
func (c Cart) Remove(productID int) {
	delete(c, strconv.Itoa(productID))
}

func (c Cart) Empty() bool {
	return len(c) == 0
}

// Entry is a Line resolved for display, with its product id and subtotal.
type Entry struct {
	ProductID int
	Name      string
	Price     float64
	Qty       int
	Subtotal  float64
}

// Entries returns the cart contents ordered by product id, plus the
// grand total.
func (c Cart) Entries() ([]Entry, float64) {
	entries := make([]Entry, 0, len(c))
	var total float64
	for key, line := range c {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		sub := line.Price * float64(line.Qty)
		entries = append(entries, Entry{
			ProductID: id,
			Name:      line.Name,
			Price:     line.Price,
			Qty:       line.Qty,
			Subtotal:  sub,
		})
		total += sub
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ProductID < entries[j].ProductID })
	return entries, total
}
