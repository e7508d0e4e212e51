package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Men's Fashion", "men-s-fashion"},
		{"Women's Fashion", "women-s-fashion"},
		{"Electronics", "electronics"},
		{"DeFacto", "defacto"},
		{"ALL UPPER CASE", "all-upper-case"},
		{"Électronique", "electronique"},
		{"Kadın Giyim", "kadin-giyim"},
		{"Çocuk Ürünleri", "cocuk-urunleri"},
		{"İstanbul", "istanbul"},
		{"Straße", "strasse"},
		{"price: $100", "price-100"},
		{"one & two", "one-two"},
		{"   hello\t\tworld   ", "hello-world"},
		{"a - - b", "a-b"},
		{"!hello!", "hello"},
		{"", ""},
		{"!!!", ""},
		{"123", "123"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Men's Fashion", "men-s-fashion"))
	assert.True(t, Equal("  Electronics ", "ELECTRONICS"))
	assert.False(t, Equal("Electronics", "Music"))
}
