package domain

// Wishlist is a set of product snapshots, at most one per product id.
type Wishlist struct {
	Items []Product `json:"items"`

	// Incomplete is set when some items are placeholders carrying only an id,
	// until the next full fetch.
	Incomplete bool `json:"incomplete,omitempty"`
}

// Count is always len(Items).
func (w Wishlist) Count() int {
	return len(w.Items)
}

// Contains reports whether productID is in the wishlist.
func (w Wishlist) Contains(productID string) bool {
	for _, p := range w.Items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// IDs returns the product ids in wishlist order.
func (w Wishlist) IDs() []string {
	ids := make([]string, len(w.Items))
	for i, p := range w.Items {
		ids[i] = p.ID
	}
	return ids
}

// Clone returns a copy whose Items slice is independent.
func (w Wishlist) Clone() Wishlist {
	out := Wishlist{Incomplete: w.Incomplete, Items: make([]Product, len(w.Items))}
	copy(out.Items, w.Items)
	return out
}

// WithMembership rebuilds the wishlist from the authoritative id list,
// keeping known snapshots and inserting placeholders for unknown ids.
// Duplicate ids collapse to one entry.
func (w Wishlist) WithMembership(ids []string) Wishlist {
	known := make(map[string]Product, len(w.Items))
	for _, p := range w.Items {
		known[p.ID] = p
	}

	out := Wishlist{Items: make([]Product, 0, len(ids))}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, ok := known[id]
		if !ok {
			p = Product{ID: id}
			out.Incomplete = true
		} else if p.Title == "" {
			out.Incomplete = true
		}
		out.Items = append(out.Items, p)
	}
	return out
}

// Without filters out productID.
func (w Wishlist) Without(productID string) Wishlist {
	out := Wishlist{Items: make([]Product, 0, len(w.Items))}
	for _, p := range w.Items {
		if p.ID == productID {
			continue
		}
		if p.Title == "" {
			out.Incomplete = true
		}
		out.Items = append(out.Items, p)
	}
	return out
}

// NewWishlist builds a wishlist from a full product list, dropping duplicates.
func NewWishlist(products []Product) Wishlist {
	out := Wishlist{Items: make([]Product, 0, len(products))}
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out.Items = append(out.Items, p)
	}
	return out
}
