package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vellum-cms/vellum-backend/internal/domain"
)

func newPendingAction(entryID uint64, action string, at time.Time) *domain.ScheduledAction {
	return &domain.ScheduledAction{
		ActionID:      uuid.NewString(),
		SpaceID:       "sp-1",
		EnvironmentID: 1,
		EntryID:       entryID,
		Action:        action,
		Status:        domain.ScheduleStatusPending,
		ScheduledFor:  at,
		Timezone:      "UTC",
		CreatedBy:     1,
	}
}

func TestScheduledActionRepository_ClaimWinsOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduledActionRepository(db)

	action := newPendingAction(42, domain.ActionPublish, time.Now().Add(-time.Minute))
	if err := repo.Create(action); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	won, err := repo.Claim(action.ID)
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if !won {
		t.Fatal("expected first claim to win")
	}

	// A second claimer must lose
	won, err = repo.Claim(action.ID)
	if err != nil {
		t.Fatalf("second Claim failed: %v", err)
	}
	if won {
		t.Fatal("expected second claim to lose")
	}
}

func TestScheduledActionRepository_CancelPendingAfterClaim(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduledActionRepository(db)

	action := newPendingAction(42, domain.ActionPublish, time.Now().Add(time.Hour))
	if err := repo.Create(action); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if won, _ := repo.Claim(action.ID); !won {
		t.Fatal("expected claim to win")
	}

	cancelled, err := repo.CancelPending(action.ActionID)
	if err != nil {
		t.Fatalf("CancelPending failed: %v", err)
	}
	if cancelled {
		t.Fatal("expected cancel to lose against a claimed action")
	}
}

func TestScheduledActionRepository_CancelPending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduledActionRepository(db)

	action := newPendingAction(42, domain.ActionUnpublish, time.Now().Add(time.Hour))
	if err := repo.Create(action); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cancelled, err := repo.CancelPending(action.ActionID)
	if err != nil {
		t.Fatalf("CancelPending failed: %v", err)
	}
	if !cancelled {
		t.Fatal("expected cancel to win on a pending action")
	}

	reloaded, err := repo.FindByActionID(action.ActionID)
	if err != nil {
		t.Fatalf("FindByActionID failed: %v", err)
	}
	if reloaded.Status != domain.ScheduleStatusCancelled {
		t.Errorf("expected cancelled, got %s", reloaded.Status)
	}

	// Claiming a cancelled action must fail
	if won, _ := repo.Claim(action.ID); won {
		t.Fatal("expected claim to lose against a cancelled action")
	}
}

func TestScheduledActionRepository_FindDue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduledActionRepository(db)

	now := time.Now()

	due := newPendingAction(1, domain.ActionPublish, now.Add(-time.Minute))
	future := newPendingAction(2, domain.ActionPublish, now.Add(time.Hour))
	claimed := newPendingAction(3, domain.ActionUnpublish, now.Add(-time.Minute))
	claimed.Status = domain.ScheduleStatusClaimed

	for _, a := range []*domain.ScheduledAction{due, future, claimed} {
		if err := repo.Create(a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	found, err := repo.FindDue(now, 10)
	if err != nil {
		t.Fatalf("FindDue failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 due action, got %d", len(found))
	}
	if found[0].ActionID != due.ActionID {
		t.Errorf("expected the past pending action, got %s", found[0].ActionID)
	}
}

func TestScheduledActionRepository_CancelPendingByEntry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduledActionRepository(db)

	first := newPendingAction(42, domain.ActionPublish, time.Now().Add(time.Hour))
	second := newPendingAction(42, domain.ActionUnpublish, time.Now().Add(2*time.Hour))
	other := newPendingAction(99, domain.ActionPublish, time.Now().Add(time.Hour))
	done := newPendingAction(42, domain.ActionPublish, time.Now().Add(-time.Hour))
	done.Status = domain.ScheduleStatusCompleted

	for _, a := range []*domain.ScheduledAction{first, second, other, done} {
		if err := repo.Create(a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	n, err := repo.CancelPendingByEntry(42)
	if err != nil {
		t.Fatalf("CancelPendingByEntry failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cancelled actions, got %d", n)
	}

	// Unrelated entry keeps its pending action
	pending, err := repo.FindPendingByEntry(99)
	if err != nil {
		t.Fatalf("FindPendingByEntry failed: %v", err)
	}
	if pending == nil || pending.ActionID != other.ActionID {
		t.Errorf("expected other entry's action untouched, got %+v", pending)
	}

	// Terminal records are left alone
	reloaded, _ := repo.FindByActionID(done.ActionID)
	if reloaded.Status != domain.ScheduleStatusCompleted {
		t.Errorf("expected completed record untouched, got %s", reloaded.Status)
	}
}

func TestScheduledActionRepository_MarkCompletedAndFailed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduledActionRepository(db)

	ok := newPendingAction(1, domain.ActionPublish, time.Now())
	bad := newPendingAction(2, domain.ActionPublish, time.Now())
	for _, a := range []*domain.ScheduledAction{ok, bad} {
		if err := repo.Create(a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if won, _ := repo.Claim(a.ID); !won {
			t.Fatal("expected claim to win")
		}
	}

	executedAt := time.Now()
	if err := repo.MarkCompleted(ok.ID, executedAt); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	if err := repo.MarkFailed(bad.ID, executedAt, "entry is archived"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	reloaded, _ := repo.FindByActionID(ok.ActionID)
	if reloaded.Status != domain.ScheduleStatusCompleted || reloaded.ExecutedAt == nil {
		t.Errorf("expected completed with executed_at, got %+v", reloaded)
	}

	reloaded, _ = repo.FindByActionID(bad.ActionID)
	if reloaded.Status != domain.ScheduleStatusFailed {
		t.Errorf("expected failed, got %s", reloaded.Status)
	}
	if reloaded.Error == nil || *reloaded.Error != "entry is archived" {
		t.Errorf("expected recorded error message, got %v", reloaded.Error)
	}
}

func TestSnapshotRepository_FindByEntryAndVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSnapshotRepository(db)

	for v := uint(1); v <= 3; v++ {
		snap := &domain.EntrySnapshot{
			EntryID:     42,
			Version:     v,
			ContentType: "blogPost",
			Fields:      domain.FieldMap{"title": {"en-US": "v"}},
			Status:      string(domain.StatusPublished),
			PublishedBy: 1,
		}
		if err := repo.Create(snap); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	snap, err := repo.FindByEntryAndVersion(42, 2)
	if err != nil {
		t.Fatalf("FindByEntryAndVersion failed: %v", err)
	}
	if snap.Version != 2 {
		t.Errorf("expected version 2, got %d", snap.Version)
	}

	// Listing is newest first
	snaps, total, err := repo.FindByEntry(42, 1, 10)
	if err != nil {
		t.Fatalf("FindByEntry failed: %v", err)
	}
	if total != 3 || len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got total=%d len=%d", total, len(snaps))
	}
	if snaps[0].Version != 3 {
		t.Errorf("expected newest snapshot first, got version %d", snaps[0].Version)
	}
}
