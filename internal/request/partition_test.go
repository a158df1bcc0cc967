package request

import (
	"testing"

	"github.com/homeserve/api/internal/lifecycle"
)

func TestPartitionDropsRejected(t *testing.T) {
	in := []ServiceRequest{
		{ID: "a", Status: lifecycle.StatusPending},
		{ID: "b", Status: lifecycle.StatusAccepted},
		{ID: "c", Status: lifecycle.StatusRejected},
		{ID: "d", Status: lifecycle.StatusCompleted},
	}

	b := Partition(in)

	if len(b.Pending) != 1 || b.Pending[0].ID != "a" {
		t.Fatalf("unexpected pending bucket: %+v", b.Pending)
	}
	if len(b.Accepted) != 1 || b.Accepted[0].ID != "b" {
		t.Fatalf("unexpected accepted bucket: %+v", b.Accepted)
	}
	if len(b.Completed) != 1 || b.Completed[0].ID != "d" {
		t.Fatalf("unexpected completed bucket: %+v", b.Completed)
	}
	total := len(b.Pending) + len(b.Accepted) + len(b.Completed)
	if total != 3 {
		t.Fatalf("rejected requests must appear in no bucket, got %d total", total)
	}
}

func TestPartitionPreservesOrder(t *testing.T) {
	in := []ServiceRequest{
		{ID: "p1", Status: lifecycle.StatusPending},
		{ID: "a1", Status: lifecycle.StatusAccepted},
		{ID: "p2", Status: lifecycle.StatusPending},
		{ID: "p3", Status: lifecycle.StatusPending},
	}

	b := Partition(in)

	want := []string{"p1", "p2", "p3"}
	if len(b.Pending) != len(want) {
		t.Fatalf("expected %d pending, got %d", len(want), len(b.Pending))
	}
	for i, id := range want {
		if b.Pending[i].ID != id {
			t.Fatalf("pending[%d] = %s, want %s", i, b.Pending[i].ID, id)
		}
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	b := Partition(nil)
	if b.Pending == nil || b.Accepted == nil || b.Completed == nil {
		t.Fatal("buckets must be empty slices, not nil")
	}
}
