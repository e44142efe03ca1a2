package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestEffectivePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item BasketItem
		want string
	}{
		{"list price only", BasketItem{Price: dec("100")}, "100"},
		{"inventory price wins", BasketItem{Price: dec("100"), InventoryPrice: decPtr("80")}, "80"},
		{"zero inventory price ignored", BasketItem{Price: dec("100"), InventoryPrice: decPtr("0")}, "100"},
		{"negative inventory price ignored", BasketItem{Price: dec("100"), InventoryPrice: decPtr("-5")}, "100"},
		// Inverted prices are trusted as entered for charging.
		{"inventory above list still wins", BasketItem{Price: dec("100"), InventoryPrice: decPtr("120")}, "120"},
	}

	for _, tc := range cases {
		got := EffectivePrice(tc.item)
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestEffectivePriceNeverExceedsListForValidDiscount(t *testing.T) {
	t.Parallel()

	item := BasketItem{Price: dec("100"), InventoryPrice: decPtr("80")}
	if EffectivePrice(item).GreaterThan(item.Price) {
		t.Fatal("effective price exceeded list price for a valid discount")
	}
}

func TestIsSpecialIndependentOfResolution(t *testing.T) {
	t.Parallel()

	if !IsSpecial(BasketItem{Price: dec("100"), InventoryPrice: decPtr("80")}) {
		t.Fatal("80 < 100 should be special")
	}
	if IsSpecial(BasketItem{Price: dec("100"), InventoryPrice: decPtr("100")}) {
		t.Fatal("inventory price equal to list must not be special")
	}
	if IsSpecial(BasketItem{Price: dec("100"), InventoryPrice: decPtr("120")}) {
		t.Fatal("inverted price must not be special")
	}
	if IsSpecial(BasketItem{Price: dec("100")}) {
		t.Fatal("missing inventory price must not be special")
	}
}

func TestLineTotal(t *testing.T) {
	t.Parallel()

	item := BasketItem{Price: dec("100"), InventoryPrice: decPtr("80"), Quantity: 2}
	if !item.LineTotal().Equal(dec("160")) {
		t.Fatalf("expected 160, got %s", item.LineTotal())
	}
}
