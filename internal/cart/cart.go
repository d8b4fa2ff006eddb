// Package cart models the client-side shopping cart as a value type with pure
// update functions. Mutations never touch storage themselves; callers apply a
// transition and then persist the result through a Store in one explicit step.
package cart

import "github.com/shopspring/decimal"

// StorageKey is the fixed namespace the cart is persisted under in the
// client-local store.
const StorageKey = "dxw_cart"

// Line is one cart entry: a snapshot of the product at the moment it was
// added, matching the order line-item shape used at checkout.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Cart is an ordered sequence of lines. All methods return a new value and
// leave the receiver untouched.
type Cart []Line

// Add appends a line, or bumps the quantity when the product is already
// present.
func (c Cart) Add(line Line) Cart {
	next := c.clone()
	for i := range next {
		if next[i].ProductID == line.ProductID {
			next[i].Quantity += line.Quantity
			return next
		}
	}
	return append(next, line)
}

// AdjustQuantity changes a line's quantity by delta. Lines that drop to zero
// or below are removed. Unknown products are a no-op.
func (c Cart) AdjustQuantity(productID string, delta int) Cart {
	next := c.clone()
	for i := range next {
		if next[i].ProductID != productID {
			continue
		}
		next[i].Quantity += delta
		if next[i].Quantity <= 0 {
			return append(next[:i], next[i+1:]...)
		}
		return next
	}
	return next
}

// Count is the total number of units across all lines.
func (c Cart) Count() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// Subtotal is the sum of price times quantity over all lines.
func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// Totals returns the item subtotal and the grand total including shipping.
func (c Cart) Totals(shipping decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = c.Subtotal()
	return subtotal, subtotal.Add(shipping)
}

func (c Cart) clone() Cart {
	next := make(Cart, len(c))
	copy(next, c)
	return next
}
