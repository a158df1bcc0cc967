package lifecycle

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusAccepted) {
		t.Fatal("expected pending -> accepted to be allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if !CanTransition(StatusAccepted, StatusCompleted) {
		t.Fatal("expected accepted -> completed to be allowed")
	}
	if CanTransition(StatusPending, StatusCompleted) {
		t.Fatal("pending must not skip straight to completed")
	}
	if CanTransition(StatusAccepted, StatusPending) {
		t.Fatal("accepted must not move back to pending")
	}
	if CanTransition(StatusRejected, StatusAccepted) {
		t.Fatal("rejected is terminal")
	}
	if CanTransition(StatusCompleted, StatusAccepted) {
		t.Fatal("completed is terminal")
	}
}

func TestCanTransitionExhaustive(t *testing.T) {
	statuses := []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted}
	legal := map[[2]Status]bool{
		{StatusPending, StatusAccepted}:  true,
		{StatusPending, StatusRejected}:  true,
		{StatusAccepted, StatusCompleted}: true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			got := CanTransition(from, to)
			want := legal[[2]Status{from, to}]
			if got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestSelfTransitionRejected(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted} {
		if CanTransition(s, s) {
			t.Errorf("self transition %s -> %s must be illegal", s, s)
		}
	}
}

func TestTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusAccepted.Terminal() {
		t.Fatal("pending and accepted are not terminal")
	}
	if !StatusRejected.Terminal() || !StatusCompleted.Terminal() {
		t.Fatal("rejected and completed are terminal")
	}
}

func TestValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("cancelled").Valid() {
		t.Fatal("unknown status must not be valid")
	}
}

func TestAuthorize(t *testing.T) {
	if err := Authorize("w1", "w1", StatusPending, StatusAccepted); err != nil {
		t.Fatalf("owner accepting pending request: %v", err)
	}
	if err := Authorize("w2", "w1", StatusPending, StatusAccepted); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := Authorize("w1", "w1", StatusAccepted, StatusPending); err != ErrIllegalTransition {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	// Ownership failure wins even when the transition would also be illegal.
	if err := Authorize("w2", "w1", StatusCompleted, StatusPending); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for non-owner, got %v", err)
	}
}
