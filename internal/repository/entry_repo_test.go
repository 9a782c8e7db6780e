package repository

import (
	"errors"
	"testing"

	"github.com/vellum-cms/vellum-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Entry{},
		&domain.EntrySnapshot{},
		&domain.ScheduledAction{},
		&domain.ContentType{},
		&domain.Space{},
		&domain.Environment{},
		&domain.SpaceMember{},
		&domain.User{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func newDraftEntry(spaceID string, envID uint64) *domain.Entry {
	return &domain.Entry{
		SpaceID:       spaceID,
		EnvironmentID: envID,
		ContentType:   "blogPost",
		Fields:        domain.FieldMap{"title": {"en-US": "Hello"}},
		Status:        domain.StatusDraft,
		Version:       1,
		CreatedBy:     1,
		UpdatedBy:     1,
	}
}

func TestEntryRepository_UpdateWithVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	entry := newDraftEntry("sp-1", 1)
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fields := domain.FieldMap{"title": {"en-US": "Updated"}}
	err := repo.UpdateWithVersion(entry.ID, 1, map[string]interface{}{
		"fields":  fields,
		"version": 2,
	})
	if err != nil {
		t.Fatalf("UpdateWithVersion failed: %v", err)
	}

	reloaded, err := repo.FindByID("sp-1", 1, entry.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if reloaded.Version != 2 {
		t.Errorf("expected version 2, got %d", reloaded.Version)
	}
	if reloaded.Fields["title"]["en-US"] != "Updated" {
		t.Errorf("expected updated title, got %v", reloaded.Fields["title"]["en-US"])
	}
}

func TestEntryRepository_UpdateWithVersion_StaleVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	entry := newDraftEntry("sp-1", 1)
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Guard with a version the row no longer has
	err := repo.UpdateWithVersion(entry.ID, 99, map[string]interface{}{"version": 100})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	// The row must be untouched
	reloaded, _ := repo.FindByID("sp-1", 1, entry.ID)
	if reloaded.Version != 1 {
		t.Errorf("expected version 1 after rejected update, got %d", reloaded.Version)
	}
}

func TestEntryRepository_UpdateWithVersionAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	entry := newDraftEntry("sp-1", 1)
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	from := []string{string(domain.StatusDraft), string(domain.StatusChanged)}
	err := repo.UpdateWithVersionAndStatus(entry.ID, 1, from, map[string]interface{}{
		"status":            string(domain.StatusPublished),
		"published_version": 1,
	})
	if err != nil {
		t.Fatalf("UpdateWithVersionAndStatus failed: %v", err)
	}

	// Same version, but the status left the allowed set — the write that
	// lost the race must be rejected
	err = repo.UpdateWithVersionAndStatus(entry.ID, 1, from, map[string]interface{}{
		"status": string(domain.StatusPublished),
	})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict for repeated transition, got %v", err)
	}

	reloaded, _ := repo.FindByID("sp-1", 1, entry.ID)
	if reloaded.Status != domain.StatusPublished {
		t.Errorf("expected published status, got %s", reloaded.Status)
	}
}

func TestEntryRepository_FindByID_ScopedToSpaceAndEnvironment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	entry := newDraftEntry("sp-1", 1)
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.FindByID("sp-1", 1, entry.ID); err != nil {
		t.Fatalf("expected entry in its own scope: %v", err)
	}

	if _, err := repo.FindByID("sp-other", 1, entry.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found for wrong space, got %v", err)
	}
	if _, err := repo.FindByID("sp-1", 2, entry.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found for wrong environment, got %v", err)
	}
}

func TestEntryRepository_ListPublished(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	statuses := []domain.EntryStatus{
		domain.StatusDraft,
		domain.StatusPublished,
		domain.StatusChanged,
		domain.StatusArchived,
	}
	for _, status := range statuses {
		entry := newDraftEntry("sp-1", 1)
		entry.Status = status
		if err := repo.Create(entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	entries, total, err := repo.ListPublished("sp-1", 1, EntryFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 delivery-visible entries, got %d", total)
	}
	for _, e := range entries {
		if e.Status != domain.StatusPublished && e.Status != domain.StatusChanged {
			t.Errorf("unexpected status in published listing: %s", e.Status)
		}
	}
}

func TestEntryRepository_List_FilterByContentType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	blog := newDraftEntry("sp-1", 1)
	if err := repo.Create(blog); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	page := newDraftEntry("sp-1", 1)
	page.ContentType = "landingPage"
	if err := repo.Create(page); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entries, total, err := repo.List("sp-1", 1, EntryFilter{ContentType: "blogPost", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("expected exactly 1 blogPost entry, got total=%d len=%d", total, len(entries))
	}
	if entries[0].ContentType != "blogPost" {
		t.Errorf("expected blogPost, got %s", entries[0].ContentType)
	}
}

func TestEntryRepository_UpdateScheduledAction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	entry := newDraftEntry("sp-1", 1)
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	raw := `{"action_id":"a-1","action":"publish","scheduled_for":"2026-09-01T09:00:00Z"}`
	if err := repo.UpdateScheduledAction(entry.ID, &raw); err != nil {
		t.Fatalf("UpdateScheduledAction failed: %v", err)
	}

	reloaded, _ := repo.FindByID("sp-1", 1, entry.ID)
	info, err := reloaded.PendingAction()
	if err != nil {
		t.Fatalf("PendingAction parse failed: %v", err)
	}
	if info == nil || info.ActionID != "a-1" || info.Action != domain.ActionPublish {
		t.Fatalf("unexpected embedded action: %+v", info)
	}

	// Clearing stores NULL
	if err := repo.UpdateScheduledAction(entry.ID, nil); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	reloaded, _ = repo.FindByID("sp-1", 1, entry.ID)
	if reloaded.ScheduledAction != nil {
		t.Errorf("expected cleared scheduled_action, got %v", *reloaded.ScheduledAction)
	}
}

func TestEntryRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntryRepository(db)

	entry := newDraftEntry("sp-1", 1)
	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(entry.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID("sp-1", 1, entry.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	if err := repo.Delete(entry.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found deleting twice, got %v", err)
	}
}
