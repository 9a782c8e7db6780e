package domain

import (
	"testing"
	"time"
)

func TestFieldMap_ScanBytes(t *testing.T) {
	var m FieldMap
	data := []byte(`{"title":{"en-US":"Hello","ko-KR":"안녕하세요"}}`)
	if err := m.Scan(data); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if m["title"]["en-US"] != "Hello" {
		t.Errorf("Expected en-US title 'Hello', got %v", m["title"]["en-US"])
	}
	if m["title"]["ko-KR"] != "안녕하세요" {
		t.Errorf("Expected ko-KR title, got %v", m["title"]["ko-KR"])
	}
}

func TestFieldMap_ScanString(t *testing.T) {
	// sqlite hands JSON columns back as string
	var m FieldMap
	if err := m.Scan(`{"body":{"en-US":"text"}}`); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if m["body"]["en-US"] != "text" {
		t.Errorf("Expected body 'text', got %v", m["body"]["en-US"])
	}
}

func TestFieldMap_ScanNil(t *testing.T) {
	m := FieldMap{"title": {"en-US": "old"}}
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if m != nil {
		t.Errorf("Expected nil map after scanning NULL, got %v", m)
	}
}

func TestFieldMap_ValueNil(t *testing.T) {
	var m FieldMap
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v != nil {
		t.Errorf("Expected nil driver value for nil map, got %v", v)
	}
}

func TestFieldMap_CloneIsIndependent(t *testing.T) {
	original := FieldMap{"title": {"en-US": "Hello"}}
	clone := original.Clone()

	clone["title"]["en-US"] = "Changed"

	if original["title"]["en-US"] != "Hello" {
		t.Errorf("Expected original unchanged, got %v", original["title"]["en-US"])
	}
}

func TestEntry_PendingActionRoundTrip(t *testing.T) {
	entry := &Entry{}

	info, err := entry.PendingAction()
	if err != nil {
		t.Fatalf("Expected no error for empty action, got: %v", err)
	}
	if info != nil {
		t.Errorf("Expected nil action for fresh entry, got %+v", info)
	}

	scheduledFor := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	if err := entry.SetPendingAction(&ScheduledActionInfo{
		ActionID:     "a3f1c2d4-0000-0000-0000-000000000001",
		Action:       ActionPublish,
		ScheduledFor: scheduledFor,
		Timezone:     "Asia/Seoul",
	}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	info, err = entry.PendingAction()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if info == nil {
		t.Fatal("Expected parsed action, got nil")
	}
	if info.Action != ActionPublish {
		t.Errorf("Expected action 'publish', got '%s'", info.Action)
	}
	if !info.ScheduledFor.Equal(scheduledFor) {
		t.Errorf("Expected scheduled_for %v, got %v", scheduledFor, info.ScheduledFor)
	}

	entry.ClearPendingAction()
	if entry.ScheduledAction != nil {
		t.Error("Expected embedded action cleared")
	}
}

func TestEntry_HasPendingChanges(t *testing.T) {
	now := time.Now()
	three := uint(3)

	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{
			name:  "never published draft",
			entry: Entry{Status: StatusDraft, Version: 2},
			want:  false,
		},
		{
			name: "published and current",
			entry: Entry{
				Status: StatusPublished, Version: 3,
				PublishedVersion: &three, FirstPublishedAt: &now,
			},
			want: false,
		},
		{
			name: "edited after publish",
			entry: Entry{
				Status: StatusChanged, Version: 5,
				PublishedVersion: &three, FirstPublishedAt: &now,
			},
			want: true,
		},
		{
			name: "unpublished keeps last published version",
			entry: Entry{
				Status: StatusDraft, Version: 5,
				PublishedVersion: &three, FirstPublishedAt: &now,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.HasPendingChanges(); got != tt.want {
				t.Errorf("HasPendingChanges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldDefinitions_IsLocalized(t *testing.T) {
	fields := FieldDefinitions{
		{ID: "title", Type: "Symbol", Localized: true},
		{ID: "slug", Type: "Symbol", Localized: false},
	}

	if !fields.IsLocalized("title") {
		t.Error("Expected title to be localized")
	}
	if fields.IsLocalized("slug") {
		t.Error("Expected slug to be non-localized")
	}
	if !fields.IsLocalized("unknownField") {
		t.Error("Expected unknown fields to default to localized")
	}
}
