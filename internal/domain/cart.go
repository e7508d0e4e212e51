package domain

import (
	"github.com/shopspring/decimal"
)

// ProductSummary is the product information the gateway populates on cart lines.
type ProductSummary struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	ImageCover     string  `json:"image_cover,omitempty"`
	Category       string  `json:"category,omitempty"`
	Brand          string  `json:"brand,omitempty"`
	RatingsAverage float64 `json:"ratings_average,omitempty"`
}

// CartLineItem is one product in the cart. Price is the unit price snapshot
// taken by the gateway.
type CartLineItem struct {
	ProductID string          `json:"product_id"`
	Count     int             `json:"count"`
	Price     decimal.Decimal `json:"price"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// Subtotal returns count × price.
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Count)))
}

// Cart is the local view of the gateway cart. Count and Total are derived
// from Items by Recompute and must never be set independently.
type Cart struct {
	ID      string          `json:"id,omitempty"`
	OwnerID string          `json:"owner_id,omitempty"`
	Items   []CartLineItem  `json:"items"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
}

// Recompute derives Count and Total from Items.
func (c *Cart) Recompute() {
	count := 0
	total := decimal.Zero
	for _, li := range c.Items {
		count += li.Count
		total = total.Add(li.Subtotal())
	}
	c.Count = count
	c.Total = total
}

// Find returns the index of the line for productID, or -1.
func (c *Cart) Find(productID string) int {
	for i, li := range c.Items {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}

// Has reports whether the cart holds a line for productID.
func (c *Cart) Has(productID string) bool {
	return c.Find(productID) >= 0
}

// SetCount patches the count of one line and recomputes. It reports whether
// the line existed.
func (c *Cart) SetCount(productID string, count int) bool {
	i := c.Find(productID)
	if i < 0 {
		return false
	}
	c.Items[i].Count = count
	c.Recompute()
	return true
}

// Remove filters out the line for productID and recomputes. Removing an
// absent product is a no-op.
func (c *Cart) Remove(productID string) {
	items := c.Items[:0:0]
	for _, li := range c.Items {
		if li.ProductID != productID {
			items = append(items, li)
		}
	}
	c.Items = items
	c.Recompute()
}

// Clone returns a deep copy safe to hand to callers.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartLineItem, len(c.Items))
	for i, li := range c.Items {
		if li.Product != nil {
			p := *li.Product
			li.Product = &p
		}
		out.Items[i] = li
	}
	return out
}

// FillSummaries copies product summaries from prev onto lines that arrived
// without one. Mutation responses from the gateway reference products by id
// only, while the last fetch had them populated.
func (c *Cart) FillSummaries(prev Cart) {
	for i := range c.Items {
		if c.Items[i].Product != nil {
			continue
		}
		if j := prev.Find(c.Items[i].ProductID); j >= 0 && prev.Items[j].Product != nil {
			p := *prev.Items[j].Product
			c.Items[i].Product = &p
		}
	}
}
