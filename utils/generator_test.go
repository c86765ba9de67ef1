package utils

import (
	"strings"
	"testing"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	id := GenerateOrderID()
	if !strings.HasPrefix(id, "ORD") {
		t.Fatalf("expected ORD prefix, got %q", id)
	}
	if len(id) != 3+orderIDLength {
		t.Fatalf("expected length %d, got %d (%q)", 3+orderIDLength, len(id), id)
	}
	for _, r := range id[3:] {
		if !strings.ContainsRune(orderIDAlphabet, r) {
			t.Fatalf("character %q outside allowed alphabet in %q", r, id)
		}
	}
}

func TestGenerateLinkIDFormat(t *testing.T) {
	id := GenerateLinkID()
	if !strings.HasPrefix(id, "LINK") {
		t.Fatalf("expected LINK prefix, got %q", id)
	}
	if len(id) != 4+orderIDLength {
		t.Fatalf("expected length %d, got %d (%q)", 4+orderIDLength, len(id), id)
	}
}

func TestGenerateOrderIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateOrderID()
		if seen[id] {
			t.Fatalf("duplicate order ID generated: %q", id)
		}
		seen[id] = true
	}
}
