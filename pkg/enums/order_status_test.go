package enums

import "testing"

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]OrderStatus{
		"Pending":     OrderStatusPending,
		"  SHIPPED  ": OrderStatusShipped,
		"delivered":   OrderStatusDelivered,
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseOrderStatusCaseInsensitive(t *testing.T) {
	t.Parallel()

	got, err := ParseOrderStatus("CANCELED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != OrderStatusCanceled {
		t.Fatalf("expected canceled, got %q", got)
	}

	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	for _, s := range []OrderStatus{OrderStatusCanceled, OrderStatusDelivered, OrderStatusCompleted} {
		if !s.IsTerminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped} {
		if s.IsTerminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}
