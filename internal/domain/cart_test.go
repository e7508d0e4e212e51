package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, count int, price string) CartLineItem {
	return CartLineItem{ProductID: id, Count: count, Price: decimal.RequireFromString(price)}
}

// ============================================================================
// Cart.Recompute Tests
// ============================================================================

func TestRecompute_MultipleItems(t *testing.T) {
	c := &Cart{Items: []CartLineItem{
		line("p1", 2, "149.50"),
		line("p2", 1, "20"),
		line("p3", 3, "0.10"),
	}}
	c.Recompute()

	assert.Equal(t, 6, c.Count)
	// 299.00 + 20 + 0.30
	assert.True(t, decimal.RequireFromString("319.30").Equal(c.Total), "total = %s", c.Total)
}

func TestRecompute_Empty(t *testing.T) {
	c := &Cart{Count: 4, Total: decimal.NewFromInt(99)}
	c.Recompute()

	assert.Equal(t, 0, c.Count)
	assert.True(t, c.Total.IsZero())
}

func TestRecompute_FractionalPricesAreExact(t *testing.T) {
	c := &Cart{}
	for i := 0; i < 10; i++ {
		c.Items = append(c.Items, line("p", 1, "0.1"))
	}
	c.Recompute()

	assert.True(t, decimal.NewFromInt(1).Equal(c.Total))
}

// ============================================================================
// Mutation helper Tests
// ============================================================================

func TestSetCount(t *testing.T) {
	c := &Cart{Items: []CartLineItem{line("p1", 1, "10"), line("p2", 1, "5")}}
	c.Recompute()

	ok := c.SetCount("p1", 3)
	require.True(t, ok)
	assert.Equal(t, 4, c.Count)
	assert.True(t, decimal.NewFromInt(35).Equal(c.Total))

	assert.False(t, c.SetCount("missing", 2))
	assert.Equal(t, 4, c.Count)
}

func TestRemove(t *testing.T) {
	c := &Cart{Items: []CartLineItem{line("p1", 2, "10"), line("p2", 1, "5")}}
	c.Recompute()

	c.Remove("p1")
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Count)
	assert.True(t, decimal.NewFromInt(5).Equal(c.Total))

	c.Remove("p1")
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Count)
}

func TestRemove_DoesNotAliasOriginal(t *testing.T) {
	orig := Cart{Items: []CartLineItem{line("p1", 1, "1"), line("p2", 1, "1")}}
	c := orig
	c.Remove("p1")

	assert.Equal(t, "p1", orig.Items[0].ProductID)
}

func TestClone_IsDeep(t *testing.T) {
	c := Cart{ID: "c1", Items: []CartLineItem{line("p1", 1, "1")}}
	c.Items[0].Product = &ProductSummary{ID: "p1", Title: "Shirt"}

	cp := c.Clone()
	cp.Items[0].Count = 9
	cp.Items[0].Product.Title = "changed"

	assert.Equal(t, 1, c.Items[0].Count)
	assert.Equal(t, "Shirt", c.Items[0].Product.Title)
	assert.Equal(t, "c1", cp.ID)
}

func TestFillSummaries(t *testing.T) {
	prev := Cart{Items: []CartLineItem{line("p1", 1, "1")}}
	prev.Items[0].Product = &ProductSummary{ID: "p1", Title: "Shirt"}

	next := Cart{Items: []CartLineItem{line("p1", 2, "1"), line("p2", 1, "3")}}
	next.FillSummaries(prev)

	require.NotNil(t, next.Items[0].Product)
	assert.Equal(t, "Shirt", next.Items[0].Product.Title)
	assert.Nil(t, next.Items[1].Product)

	next.Items[0].Product.Title = "x"
	assert.Equal(t, "Shirt", prev.Items[0].Product.Title)
}

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(100)}
	assert.True(t, decimal.NewFromInt(100).Equal(p.EffectivePrice()))

	d := decimal.NewFromInt(80)
	p.PriceAfterDiscount = &d
	assert.True(t, decimal.NewFromInt(80).Equal(p.EffectivePrice()))
}
