package pricing

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		category   Category
		section    string
		quantity   int
		wantBase   string
		wantFee    string
		wantTotal  string
		multiplier string
	}{
		{"floor single", CategoryFloor, "F1", 1, "750", "112.5", "867.50", "1"},
		{"floor premium section", CategoryFloor, "FL20", 1, "850", "127.5", "982.50", "1"},
		{"upper bulk discount", CategoryUpper, "301", 5, "120", "18", "643.50", "0.9"},
		{"special garden deck", CategorySpecial, "Garden Deck", 3, "650", "97.5", "2144.63", "0.95"},
		{"vip premium", CategoryVIP, "VIP12", 2, "675", "101.25", "1562.50", "1"},
		{"lower premium number", CategoryLower, "12", 4, "400", "60", "1767.00", "0.95"},
		{"mid plain", CategoryMid, "109", 1, "225", "33.75", "263.75", "1"},
		{"unknown category falls back", Category("Nosebleed"), "X", 1, "100", "15", "120.00", "1"},
		{"surcharge applies under any category", CategoryUpper, "Executive Suites", 1, "270", "40.5", "315.50", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(tt.category, tt.section, tt.quantity)

			assert.True(t, d(tt.wantBase).Equal(b.BasePrice), "base = %s", b.BasePrice)
			assert.True(t, d(tt.wantFee).Equal(b.ServiceFee), "service fee = %s", b.ServiceFee)
			assert.True(t, d("5").Equal(b.ProcessingFee))
			assert.True(t, d(tt.multiplier).Equal(b.Multiplier), "multiplier = %s", b.Multiplier)
			assert.Equal(t, tt.wantTotal, b.TotalPrice.StringFixed(2))
		})
	}
}

func TestCompute_SubtotalBeforeDiscount(t *testing.T) {
	b := Compute(CategorySpecial, "Garden Deck", 3)
	assert.True(t, d("2257.5").Equal(b.Subtotal), "subtotal = %s", b.Subtotal)
}

func TestCompute_SectionMatchIsExact(t *testing.T) {
	assert.True(t, d("750").Equal(Compute(CategoryFloor, "fl20", 1).BasePrice))
	assert.True(t, d("750").Equal(Compute(CategoryFloor, "FL20 ", 1).BasePrice))
}

func TestQuantityMultiplier(t *testing.T) {
	cases := map[int]string{1: "1", 2: "1", 3: "0.95", 4: "0.95", 5: "0.9", 10: "0.9"}
	for qty, want := range cases {
		assert.True(t, d(want).Equal(QuantityMultiplier(qty)), "qty %d", qty)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	want := Compute(CategoryLower, "21", 7)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := Compute(CategoryLower, "21", 7)
			assert.True(t, want.TotalPrice.Equal(got.TotalPrice))
		}()
	}
	wg.Wait()
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("floor")
	assert.True(t, ok)
	assert.Equal(t, CategoryFloor, c)

	c, ok = ParseCategory(" vip ")
	assert.True(t, ok)
	assert.Equal(t, CategoryVIP, c)

	_, ok = ParseCategory("Balcony")
	assert.False(t, ok)

	assert.True(t, CategoryMid.IsValid())
	assert.False(t, Category("mid").IsValid())
}
