package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/types"
)

func searchFixture() (types.Order, SellerResolver) {
	sellerID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	order := types.Order{
		ID:         uuid.MustParse("b7a9c915-1db5-4b58-9f47-2c6f7a2d1e03"),
		BuyerID:    uuid.New(),
		BuyerName:  "Dana Whitfield",
		BuyerEmail: "dana@northside-clinic.example",
		Status:     "Shipped",
		OrderDate:  time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC),
		Items: []types.OrderItem{
			{SellerID: sellerID, ProductName: "Sterile Gauze Pads", Quantity: 4},
			{SellerID: sellerID, ProductName: "Nitrile Gloves", Quantity: 2},
		},
	}
	resolve := func(id uuid.UUID) (types.Seller, bool) {
		if id != sellerID {
			return types.Seller{}, false
		}
		return types.Seller{ID: sellerID, Name: "MedSource Ltd", Email: "sales@medsource.example"}, true
	}
	return order, resolve
}

func TestMatchOrder(t *testing.T) {
	order, resolve := searchFixture()

	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"whitespace query matches", "   ", true},
		{"id fragment", "b7a9c915", true},
		{"status case-insensitive", "shipped", true},
		{"formatted date", "mar 7, 2026", true},
		{"buyer name", "whitfield", true},
		{"buyer email", "northside-clinic", true},
		{"product name", "gauze", true},
		{"second product", "nitrile", true},
		{"seller name", "medsource", true},
		{"seller email", "sales@medsource", true},
		{"no match", "sutures", false},
		{"wrong date", "apr 7", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchOrder(order, resolve, tc.query); got != tc.want {
				t.Fatalf("MatchOrder(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestMatchOrderWithoutResolver(t *testing.T) {
	order, _ := searchFixture()
	if MatchOrder(order, nil, "medsource") {
		t.Fatal("seller fields must not match without a resolver")
	}
	if !MatchOrder(order, nil, "gauze") {
		t.Fatal("product name should still match without a resolver")
	}
}

func TestFilterPreservesOrderAndDropsMisses(t *testing.T) {
	first, resolve := searchFixture()
	second := first
	second.ID = uuid.New()
	second.Items = []types.OrderItem{{SellerID: uuid.New(), ProductName: "Surgical Masks"}}
	third := first
	third.ID = uuid.New()

	all := []types.Order{first, second, third}

	got := Filter(all, resolve, "gauze")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != third.ID {
		t.Fatal("filter must preserve input order")
	}

	if got := Filter(all, resolve, ""); len(got) != len(all) {
		t.Fatalf("empty query must return everything, got %d", len(got))
	}
}
