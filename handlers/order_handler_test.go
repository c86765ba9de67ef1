package handlers

import (
	"testing"

	"github.com/comeoffice/rank_booking/models"
)

func strPtr(s string) *string { return &s }

func TestBuildOrderUpdatesNotesOnlyNeverTouchesStatus(t *testing.T) {
	// A notes edit read before a concurrent approval must not write the
	// stale status back over it.
	current := models.Order{Status: models.OrderStatusPending}
	updates, approveRequested, err := buildOrderUpdates(updateOrderInput{Notes: strPtr("called customer")}, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approveRequested {
		t.Fatal("notes edit must not request approval")
	}
	if _, ok := updates["status"]; ok {
		t.Fatal("notes edit must not write the status column")
	}
	if updates["notes"] != "called customer" {
		t.Fatalf("unexpected notes update: %v", updates["notes"])
	}
}

func TestBuildOrderUpdatesApprovalGoesThroughCore(t *testing.T) {
	current := models.Order{Status: models.OrderStatusPending}
	updates, approveRequested, err := buildOrderUpdates(updateOrderInput{Status: models.OrderStatusApproved}, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approveRequested {
		t.Fatal("approving a pending order must route through the core")
	}
	if _, ok := updates["status"]; ok {
		t.Fatal("approved must never be written as a plain column update")
	}
}

func TestBuildOrderUpdatesApprovedIsIdempotent(t *testing.T) {
	current := models.Order{Status: models.OrderStatusApproved}
	updates, approveRequested, err := buildOrderUpdates(updateOrderInput{Status: models.OrderStatusApproved, Notes: strPtr("vip")}, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approveRequested {
		t.Fatal("re-saving an approved order must not re-run approval")
	}
	if _, ok := updates["status"]; ok {
		t.Fatal("re-saving an approved order must not rewrite status")
	}
	if updates["notes"] != "vip" {
		t.Fatal("notes update lost")
	}
}

func TestBuildOrderUpdatesPlainStatusChanges(t *testing.T) {
	current := models.Order{Status: models.OrderStatusPending}
	for _, status := range []string{models.OrderStatusPending, models.OrderStatusRejected, models.OrderStatusCompleted} {
		updates, approveRequested, err := buildOrderUpdates(updateOrderInput{Status: status}, current)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", status, err)
		}
		if approveRequested {
			t.Fatalf("%q must not request approval", status)
		}
		if updates["status"] != status {
			t.Fatalf("expected status update %q, got %v", status, updates["status"])
		}
	}
}

func TestBuildOrderUpdatesRejectsUnknownStatus(t *testing.T) {
	_, _, err := buildOrderUpdates(updateOrderInput{Status: "refunded"}, models.Order{})
	if err == nil {
		t.Fatal("unknown status must be rejected")
	}
}
