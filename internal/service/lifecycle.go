package service

import (
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
)

// Lifecycle transition rules. Pure functions over an entry's current state —
// the actual writes (single conditional UPDATE per transition) live in
// EntryService so that every rule here is enforced under the same version
// check that detects concurrent editors.

// statusAfterSave returns the status an entry holds after a field mutation.
// published diverges to changed; draft and archived keep their status
// (editing an archived entry does not resurrect it).
func statusAfterSave(current domain.EntryStatus) domain.EntryStatus {
	if current == domain.StatusPublished {
		return domain.StatusChanged
	}
	return current
}

// guardPublish rejects publishing an archived entry. The no-op case
// (already published at the current version) is signalled separately so the
// caller can skip the write and the snapshot append.
func guardPublish(entry *domain.Entry) (noop bool, err error) {
	if entry.Status == domain.StatusArchived {
		return false, common.ErrInvalidTransition
	}
	if entry.Status == domain.StatusPublished &&
		entry.PublishedVersion != nil && *entry.PublishedVersion == entry.Version {
		return true, nil
	}
	return false, nil
}

// guardUnpublish allows published and changed entries through, treats an
// already-draft entry as a no-op, and rejects archived entries.
func guardUnpublish(entry *domain.Entry) (noop bool, err error) {
	switch entry.Status {
	case domain.StatusArchived:
		return false, common.ErrInvalidTransition
	case domain.StatusDraft:
		return true, nil
	default:
		return false, nil
	}
}

// guardArchive rejects archiving an already-archived entry.
func guardArchive(entry *domain.Entry) error {
	if entry.Status == domain.StatusArchived {
		return common.ErrInvalidTransition
	}
	return nil
}

// guardRestore only lets archived entries back out, always to draft.
func guardRestore(entry *domain.Entry) error {
	if entry.Status != domain.StatusArchived {
		return common.ErrInvalidTransition
	}
	return nil
}

// guardSchedule rejects registering a deferred transition on an archived
// entry; the eventual publish/unpublish could never succeed.
func guardSchedule(entry *domain.Entry) error {
	if entry.Status == domain.StatusArchived {
		return common.ErrInvalidTransition
	}
	return nil
}

// mergeFields merges incoming field values over the current ones; supplied
// keys win, absent fields are kept. For localized fields the merge happens
// per locale key so that updating one translation leaves the others alone.
// Non-localized fields are normalized under the space default locale and
// replaced whole. Fields missing from the content type definition are
// treated as localized.
func mergeFields(current, incoming domain.FieldMap, defs domain.FieldDefinitions, defaultLocale string) domain.FieldMap {
	merged := current.Clone()
	if merged == nil {
		merged = domain.FieldMap{}
	}
	for fieldID, locales := range incoming {
		if len(locales) == 0 {
			continue
		}
		if defs.IsLocalized(fieldID) {
			if merged[fieldID] == nil {
				merged[fieldID] = map[string]interface{}{}
			}
			for locale, value := range locales {
				merged[fieldID][locale] = value
			}
			continue
		}
		// 비지역화 필드: 기본 로케일 키로 정규화 후 통째로 교체
		value, ok := locales[defaultLocale]
		if !ok {
			for _, v := range locales {
				value = v
				break
			}
		}
		merged[fieldID] = map[string]interface{}{defaultLocale: value}
	}
	return merged
}
