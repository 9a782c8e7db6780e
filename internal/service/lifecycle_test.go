package service

import (
	"errors"
	"testing"

	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
)

func uintPtr(v uint) *uint { return &v }

func TestStatusAfterSave(t *testing.T) {
	tests := []struct {
		current domain.EntryStatus
		want    domain.EntryStatus
	}{
		{domain.StatusDraft, domain.StatusDraft},
		{domain.StatusPublished, domain.StatusChanged},
		{domain.StatusChanged, domain.StatusChanged},
		{domain.StatusArchived, domain.StatusArchived},
	}
	for _, tt := range tests {
		if got := statusAfterSave(tt.current); got != tt.want {
			t.Errorf("statusAfterSave(%s) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestGuardPublish(t *testing.T) {
	tests := []struct {
		name     string
		entry    *domain.Entry
		wantNoop bool
		wantErr  error
	}{
		{
			name:  "draft publishes",
			entry: &domain.Entry{Status: domain.StatusDraft, Version: 1},
		},
		{
			name:  "changed publishes",
			entry: &domain.Entry{Status: domain.StatusChanged, Version: 3, PublishedVersion: uintPtr(2)},
		},
		{
			name:     "published at current version is a no-op",
			entry:    &domain.Entry{Status: domain.StatusPublished, Version: 2, PublishedVersion: uintPtr(2)},
			wantNoop: true,
		},
		{
			name:    "archived rejected",
			entry:   &domain.Entry{Status: domain.StatusArchived, Version: 2},
			wantErr: common.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noop, err := guardPublish(tt.entry)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if noop != tt.wantNoop {
				t.Errorf("noop = %v, want %v", noop, tt.wantNoop)
			}
		})
	}
}

func TestGuardUnpublish(t *testing.T) {
	if _, err := guardUnpublish(&domain.Entry{Status: domain.StatusArchived}); !errors.Is(err, common.ErrInvalidTransition) {
		t.Errorf("archived unpublish: err = %v, want invalid transition", err)
	}
	if noop, err := guardUnpublish(&domain.Entry{Status: domain.StatusDraft}); err != nil || !noop {
		t.Errorf("draft unpublish: noop=%v err=%v, want no-op", noop, err)
	}
	if noop, err := guardUnpublish(&domain.Entry{Status: domain.StatusPublished}); err != nil || noop {
		t.Errorf("published unpublish: noop=%v err=%v, want allowed", noop, err)
	}
	if noop, err := guardUnpublish(&domain.Entry{Status: domain.StatusChanged}); err != nil || noop {
		t.Errorf("changed unpublish: noop=%v err=%v, want allowed", noop, err)
	}
}

func TestGuardArchiveAndRestore(t *testing.T) {
	for _, status := range []domain.EntryStatus{domain.StatusDraft, domain.StatusPublished, domain.StatusChanged} {
		if err := guardArchive(&domain.Entry{Status: status}); err != nil {
			t.Errorf("archive from %s: %v", status, err)
		}
		if err := guardRestore(&domain.Entry{Status: status}); !errors.Is(err, common.ErrInvalidTransition) {
			t.Errorf("restore from %s should be rejected, got %v", status, err)
		}
	}
	if err := guardArchive(&domain.Entry{Status: domain.StatusArchived}); !errors.Is(err, common.ErrInvalidTransition) {
		t.Errorf("archive twice should be rejected, got %v", err)
	}
	if err := guardRestore(&domain.Entry{Status: domain.StatusArchived}); err != nil {
		t.Errorf("restore from archived: %v", err)
	}
}

func TestMergeFields(t *testing.T) {
	defs := domain.FieldDefinitions{
		{ID: "title", Type: "text", Localized: true},
		{ID: "slug", Type: "symbol", Localized: false},
	}
	current := domain.FieldMap{
		"title": {"en-US": "Hello", "ko": "안녕"},
		"slug":  {"en-US": "hello"},
		"body":  {"en-US": "old body"},
	}
	incoming := domain.FieldMap{
		"title": {"ko": "안녕하세요"},
		"slug":  {"ko": "hello-world"},
	}

	merged := mergeFields(current, incoming, defs, "en-US")

	// Localized field: only the supplied locale changes
	if merged["title"]["ko"] != "안녕하세요" {
		t.Errorf("expected ko title updated, got %v", merged["title"]["ko"])
	}
	if merged["title"]["en-US"] != "Hello" {
		t.Errorf("expected en-US title kept, got %v", merged["title"]["en-US"])
	}

	// Non-localized field: normalized under the default locale, replaced whole
	if len(merged["slug"]) != 1 {
		t.Errorf("expected slug keyed under one locale, got %v", merged["slug"])
	}
	if merged["slug"]["en-US"] != "hello-world" {
		t.Errorf("expected slug replaced under default locale, got %v", merged["slug"])
	}

	// Fields absent from the update are kept
	if merged["body"]["en-US"] != "old body" {
		t.Errorf("expected untouched field kept, got %v", merged["body"])
	}

	// The input map is not mutated
	if current["title"]["ko"] != "안녕" {
		t.Errorf("merge mutated the current map: %v", current["title"])
	}
}

func TestMergeFields_UnknownFieldTreatedAsLocalized(t *testing.T) {
	current := domain.FieldMap{"extra": {"en-US": "a"}}
	incoming := domain.FieldMap{"extra": {"ko": "b"}}

	merged := mergeFields(current, incoming, nil, "en-US")
	if merged["extra"]["en-US"] != "a" || merged["extra"]["ko"] != "b" {
		t.Errorf("expected per-locale merge for unknown field, got %v", merged["extra"])
	}
}

func TestMergeFields_NilCurrent(t *testing.T) {
	incoming := domain.FieldMap{"title": {"en-US": "New"}}
	merged := mergeFields(nil, incoming, nil, "en-US")
	if merged["title"]["en-US"] != "New" {
		t.Errorf("expected merge into empty map, got %v", merged)
	}
}
