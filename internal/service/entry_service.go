package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/hook"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"github.com/vellum-cms/vellum-backend/pkg/cache"
	"gorm.io/gorm"
)

// EntryService is the façade in front of the publication lifecycle engine.
// Every operation authorizes first, loads the current entry, applies the
// transition as a single version-guarded UPDATE, and only then runs hooks,
// events and cache invalidation. A lost version race surfaces
// ErrConcurrentModification; the caller reloads and retries, never this
// service.
type EntryService struct {
	entryRepo    repository.EntryRepository
	snapshotRepo repository.SnapshotRepository
	actionRepo   repository.ScheduledActionRepository
	ctypeRepo    repository.ContentTypeRepository
	spaceRepo    repository.SpaceRepository
	authorizer   Authorizer

	scheduler *SchedulerService // optional, set after construction
	hooks     *hook.HookManager // optional
	events    *hook.EventBus    // optional
	cache     cache.Service     // optional
}

// NewEntryService creates a new EntryService
func NewEntryService(
	entryRepo repository.EntryRepository,
	snapshotRepo repository.SnapshotRepository,
	actionRepo repository.ScheduledActionRepository,
	ctypeRepo repository.ContentTypeRepository,
	spaceRepo repository.SpaceRepository,
	authorizer Authorizer,
) *EntryService {
	return &EntryService{
		entryRepo:    entryRepo,
		snapshotRepo: snapshotRepo,
		actionRepo:   actionRepo,
		ctypeRepo:    ctypeRepo,
		spaceRepo:    spaceRepo,
		authorizer:   authorizer,
	}
}

// SetScheduler wires the scheduler used by Schedule/CancelSchedule
func (s *EntryService) SetScheduler(scheduler *SchedulerService) {
	s.scheduler = scheduler
}

// SetHooks wires the lifecycle hook manager and event bus (optional)
func (s *EntryService) SetHooks(hooks *hook.HookManager, events *hook.EventBus) {
	s.hooks = hooks
	s.events = events
}

// SetCache wires the Redis cache (optional)
func (s *EntryService) SetCache(c cache.Service) {
	s.cache = c
}

// ========================================
// 작성/수정 (save path)
// ========================================

// Create inserts a new entry. When req.Publish is set the row is written
// directly as published v1 — there is no moment where a concurrent reader
// can observe the entry as a draft.
func (s *EntryService) Create(actor Actor, spaceID string, envID uint64, req *domain.CreateEntryRequest) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}

	defs, defaultLocale, found, err := s.mergeContext(spaceID, envID, req.ContentType)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrContentTypeNotFound
	}

	fields := mergeFields(nil, req.Fields, defs, defaultLocale)
	fields = s.applyBeforeSave(spaceID, req.ContentType, fields)

	now := time.Now()
	entry := &domain.Entry{
		SpaceID:       spaceID,
		EnvironmentID: envID,
		ContentType:   req.ContentType,
		Fields:        fields,
		Status:        domain.StatusDraft,
		Version:       1,
		CreatedBy:     actor.UserID,
		UpdatedBy:     actor.UserID,
	}
	if req.Publish {
		pv := uint(1)
		entry.Status = domain.StatusPublished
		entry.PublishedVersion = &pv
		entry.FirstPublishedAt = &now
		entry.PublishedAt = &now
	}

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("엔트리 생성 실패: %w", err)
	}

	if req.Publish {
		if err := s.snapshotRepo.Create(publishSnapshot(entry, actor)); err != nil {
			// 스냅샷 실패 시 방금 만든 행을 되돌린다 (published 상태 노출 방지)
			if delErr := s.entryRepo.Delete(entry.ID); delErr != nil {
				log.Printf("[ERROR] create-with-publish 보상 삭제 실패: entry=%d: %v", entry.ID, delErr)
			}
			return nil, fmt.Errorf("발행 스냅샷 기록 실패: %w", err)
		}
		entryTransitionsTotal.WithLabelValues("publish").Inc()
	}

	entryTransitionsTotal.WithLabelValues("create").Inc()
	s.notify(hook.HookEntryAfterCreate, entry, actor)
	if req.Publish {
		s.notify(hook.HookEntryAfterPublish, entry, actor)
	}
	s.invalidateLists(entry.SpaceID, entry.EnvironmentID)
	return entry, nil
}

// Update merges the supplied fields over the current ones and bumps the
// version by one. A published entry diverges to changed; draft and archived
// keep their status.
func (s *EntryService) Update(actor Actor, spaceID string, envID, id uint64, req *domain.UpdateEntryRequest) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(spaceID, envID, id)
	if err != nil {
		return nil, err
	}

	defs, defaultLocale, _, err := s.mergeContext(spaceID, envID, entry.ContentType)
	if err != nil {
		return nil, err
	}
	merged := mergeFields(entry.Fields, req.Fields, defs, defaultLocale)
	merged = s.applyBeforeSave(spaceID, entry.ContentType, merged)

	return s.saveFields(actor, entry, merged)
}

// saveFields applies a field replacement through the version-guarded save
// path shared by Update and RestoreFromSnapshot.
func (s *EntryService) saveFields(actor Actor, entry *domain.Entry, fields domain.FieldMap) (*domain.Entry, error) {
	newStatus := statusAfterSave(entry.Status)
	newVersion := entry.Version + 1
	now := time.Now()

	updates := map[string]interface{}{
		"fields":     fields,
		"version":    newVersion,
		"status":     string(newStatus),
		"updated_by": actor.UserID,
		"updated_at": now,
	}
	if err := s.casUpdate(entry.ID, entry.Version, updates); err != nil {
		return nil, err
	}

	entry.Fields = fields
	entry.Version = newVersion
	entry.Status = newStatus
	entry.UpdatedBy = actor.UserID
	entry.UpdatedAt = now

	entryTransitionsTotal.WithLabelValues("save").Inc()
	s.notify(hook.HookEntryAfterSave, entry, actor)
	s.invalidateLists(entry.SpaceID, entry.EnvironmentID)
	return entry, nil
}

// ========================================
// 상태 전이 (publish / unpublish / archive / restore)
// ========================================

// Publish makes the entry's current version the public one and appends an
// immutable snapshot of it. Publishing an entry that is already published at
// its current version is a no-op and appends no snapshot. The status update
// and the snapshot append are two writes: when the append fails the status
// update is reverted so callers never see a published entry the ledger does
// not know about.
func (s *EntryService) Publish(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(spaceID, envID, id)
	if err != nil {
		return nil, err
	}

	noop, err := guardPublish(entry)
	if err != nil {
		return nil, err
	}
	if noop {
		return entry, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            string(domain.StatusPublished),
		"published_version": entry.Version,
		"published_at":      now,
		"updated_by":        actor.UserID,
		"updated_at":        now,
	}
	if !entry.WasPublished() {
		updates["first_published_at"] = now
	}
	// publish는 version을 올리지 않으므로 status까지 조건에 넣는다.
	// 같은 버전을 동시에 발행하면 한쪽만 이기고 다른쪽은 409를 받는다.
	if err := s.casUpdateFrom(entry.ID, entry.Version,
		[]string{string(domain.StatusDraft), string(domain.StatusChanged)}, updates); err != nil {
		return nil, err
	}

	prev := *entry // 스냅샷 실패 시 되돌릴 이전 상태

	pv := entry.Version
	entry.Status = domain.StatusPublished
	entry.PublishedVersion = &pv
	entry.PublishedAt = &now
	if entry.FirstPublishedAt == nil {
		entry.FirstPublishedAt = &now
	}
	entry.UpdatedBy = actor.UserID
	entry.UpdatedAt = now

	if err := s.snapshotRepo.Create(publishSnapshot(entry, actor)); err != nil {
		s.revertPublish(&prev)
		return nil, fmt.Errorf("발행 스냅샷 기록 실패: %w", err)
	}

	entryTransitionsTotal.WithLabelValues("publish").Inc()
	s.notify(hook.HookEntryAfterPublish, entry, actor)
	s.invalidateDelivery(entry)
	return entry, nil
}

// revertPublish undoes the status half of a publish whose snapshot append
// failed. The version did not change, so the same guard still applies; if a
// concurrent editor got in between, the inconsistency is logged and left for
// inspection rather than overwritten.
func (s *EntryService) revertPublish(prev *domain.Entry) {
	updates := map[string]interface{}{
		"status":             string(prev.Status),
		"published_version":  prev.PublishedVersion,
		"published_at":       prev.PublishedAt,
		"first_published_at": prev.FirstPublishedAt,
		"updated_at":         prev.UpdatedAt,
	}
	if err := s.entryRepo.UpdateWithVersion(prev.ID, prev.Version, updates); err != nil {
		log.Printf("[ERROR] 발행 되돌리기 실패: entry=%d version=%d: %v", prev.ID, prev.Version, err)
	}
}

// Unpublish takes the entry off the public surface. published_version is
// kept — history is not erased — and the status returns to draft.
func (s *EntryService) Unpublish(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(spaceID, envID, id)
	if err != nil {
		return nil, err
	}

	noop, err := guardUnpublish(entry)
	if err != nil {
		return nil, err
	}
	if noop {
		return entry, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     string(domain.StatusDraft),
		"updated_by": actor.UserID,
		"updated_at": now,
	}
	if err := s.casUpdate(entry.ID, entry.Version, updates); err != nil {
		return nil, err
	}

	entry.Status = domain.StatusDraft
	entry.UpdatedBy = actor.UserID
	entry.UpdatedAt = now

	entryTransitionsTotal.WithLabelValues("unpublish").Inc()
	s.notify(hook.HookEntryAfterUnpublish, entry, actor)
	s.invalidateDelivery(entry)
	return entry, nil
}

// Archive shelves the entry and cancels any pending scheduled action: the
// embedded pointer is cleared in the same conditional UPDATE that flips the
// status, then the durable records are marked cancelled. Record cancellation
// after a committed archive is best-effort — a record that slips through is
// claimed by a later sweep, fails its transition against the archived entry,
// and performs no status change.
func (s *EntryService) Archive(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(spaceID, envID, id)
	if err != nil {
		return nil, err
	}
	if err := guardArchive(entry); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           string(domain.StatusArchived),
		"archived_at":      now,
		"scheduled_action": nil,
		"updated_by":       actor.UserID,
		"updated_at":       now,
	}
	if err := s.casUpdate(entry.ID, entry.Version, updates); err != nil {
		return nil, err
	}

	if n, err := s.actionRepo.CancelPendingByEntry(entry.ID); err != nil {
		log.Printf("[WARN] 보관 처리 중 예약 레코드 취소 실패: entry=%d: %v", entry.ID, err)
	} else if n > 0 {
		s.notifySchedule(hook.HookScheduleCancelled, entry, actor, "", "archive")
	}

	entry.Status = domain.StatusArchived
	entry.ArchivedAt = &now
	entry.ClearPendingAction()
	entry.UpdatedBy = actor.UserID
	entry.UpdatedAt = now

	entryTransitionsTotal.WithLabelValues("archive").Inc()
	s.notify(hook.HookEntryAfterArchive, entry, actor)
	s.invalidateDelivery(entry)
	return entry, nil
}

// Restore brings an archived entry back as a draft. It never re-publishes.
func (s *EntryService) Restore(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(spaceID, envID, id)
	if err != nil {
		return nil, err
	}
	if err := guardRestore(entry); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      string(domain.StatusDraft),
		"archived_at": nil,
		"updated_by":  actor.UserID,
		"updated_at":  now,
	}
	if err := s.casUpdate(entry.ID, entry.Version, updates); err != nil {
		return nil, err
	}

	entry.Status = domain.StatusDraft
	entry.ArchivedAt = nil
	entry.UpdatedBy = actor.UserID
	entry.UpdatedAt = now

	entryTransitionsTotal.WithLabelValues("restore").Inc()
	s.notify(hook.HookEntryAfterRestore, entry, actor)
	s.invalidateLists(entry.SpaceID, entry.EnvironmentID)
	return entry, nil
}

// ========================================
// 조회
// ========================================

// Get returns an entry including draft state (authorized read)
func (s *EntryService) Get(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	return s.loadEntry(spaceID, envID, id)
}

// List returns entries for the management API, drafts included
func (s *EntryService) List(actor Actor, spaceID string, envID uint64, filter repository.EntryFilter) ([]*domain.Entry, int64, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, 0, err
	}
	clampFilter(&filter)
	return s.entryRepo.List(spaceID, envID, filter)
}

// ========================================
// 버전 원장 (snapshots)
// ========================================

// ListSnapshots returns the publish history of an entry, newest first
func (s *EntryService) ListSnapshots(actor Actor, spaceID string, envID, entryID uint64, page, limit int) ([]*domain.EntrySnapshot, int64, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, 0, err
	}
	if _, err := s.loadEntry(spaceID, envID, entryID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.snapshotRepo.FindByEntry(entryID, page, limit)
}

// RestoreFromSnapshot replays a snapshot's fields forward through the save
// path: the version increments, history is never rewound. The status follows
// the normal save rule and is otherwise untouched — restoring does not
// publish.
func (s *EntryService) RestoreFromSnapshot(actor Actor, spaceID string, envID, entryID, snapshotID uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermWrite); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(spaceID, envID, entryID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshotRepo.FindByID(snapshotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSnapshotNotFound
		}
		return nil, err
	}
	if snap.EntryID != entry.ID {
		return nil, common.ErrSnapshotNotFound
	}

	fields := snap.Fields.Clone()
	fields = s.applyBeforeSave(spaceID, entry.ContentType, fields)
	return s.saveFields(actor, entry, fields)
}

// ========================================
// 예약 (façade → scheduler)
// ========================================

// Schedule registers a deferred publish/unpublish for the entry
func (s *EntryService) Schedule(actor Actor, spaceID string, envID, entryID uint64, req *domain.ScheduleActionRequest) (*domain.ScheduledAction, error) {
	if err := s.authorizer.Can(actor, spaceID, PermSchedule); err != nil {
		return nil, err
	}
	if s.scheduler == nil {
		return nil, errors.New("scheduler is not configured")
	}
	entry, err := s.loadEntry(spaceID, envID, entryID)
	if err != nil {
		return nil, err
	}
	return s.scheduler.Schedule(actor, entry, req)
}

// CancelSchedule cancels the entry's pending scheduled action, if any
func (s *EntryService) CancelSchedule(actor Actor, spaceID string, envID, entryID uint64) (*domain.Entry, error) {
	if err := s.authorizer.Can(actor, spaceID, PermSchedule); err != nil {
		return nil, err
	}
	if s.scheduler == nil {
		return nil, errors.New("scheduler is not configured")
	}
	entry, err := s.loadEntry(spaceID, envID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.scheduler.Cancel(actor, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ========================================
// 삭제
// ========================================

// Delete physically removes the entry with its snapshots and scheduled
// action records. It bypasses the state machine and cannot be undone.
func (s *EntryService) Delete(actor Actor, spaceID string, envID, id uint64) error {
	if err := s.authorizer.Can(actor, spaceID, PermDelete); err != nil {
		return err
	}
	entry, err := s.loadEntry(spaceID, envID, id)
	if err != nil {
		return err
	}

	// 자식 레코드부터 삭제 — 중간 실패 시 엔트리는 남고 재시도 가능
	if err := s.snapshotRepo.DeleteByEntry(entry.ID); err != nil {
		return fmt.Errorf("스냅샷 삭제 실패: %w", err)
	}
	if err := s.actionRepo.DeleteByEntry(entry.ID); err != nil {
		return fmt.Errorf("예약 레코드 삭제 실패: %w", err)
	}
	if err := s.entryRepo.Delete(entry.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrEntryNotFound
		}
		return err
	}

	entryTransitionsTotal.WithLabelValues("delete").Inc()
	s.notify(hook.HookEntryAfterDelete, entry, actor)
	s.invalidateDelivery(entry)
	return nil
}

// ========================================
// 공개 전달 (delivery reads, no actor)
// ========================================

// GetPublished serves the public copy of an entry. A published entry serves
// its row fields (identical to the latest snapshot); a changed entry serves
// the snapshot at published_version so in-progress edits stay invisible.
func (s *EntryService) GetPublished(ctx context.Context, spaceID string, envID, entryID uint64) (*domain.EntryResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.GetPublishedEntry(ctx, spaceID, envID, entryID); err == nil {
			var resp domain.EntryResponse
			if jsonErr := json.Unmarshal(data, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	entry, err := s.loadEntry(spaceID, envID, entryID)
	if err != nil {
		return nil, err
	}
	resp, err := s.resolveDelivered(entry)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPublishedEntry(ctx, spaceID, envID, entryID, resp); err != nil {
			log.Printf("[WARN] 발행 엔트리 캐시 저장 실패: entry=%d: %v", entryID, err)
		}
	}
	return resp, nil
}

// ListPublished lists delivery-visible entries (published or changed)
func (s *EntryService) ListPublished(ctx context.Context, spaceID string, envID uint64, filter repository.EntryFilter) ([]*domain.EntryResponse, int64, error) {
	clampFilter(&filter)
	entries, total, err := s.entryRepo.ListPublished(spaceID, envID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*domain.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp, err := s.resolveDelivered(entry)
		if err != nil {
			// 스냅샷 유실 엔트리는 목록에서 건너뛴다
			log.Printf("[ERROR] 전달 해석 실패: entry=%d: %v", entry.ID, err)
			continue
		}
		responses = append(responses, resp)
	}
	return responses, total, nil
}

// resolveDelivered builds the public representation of a deliverable entry
func (s *EntryService) resolveDelivered(entry *domain.Entry) (*domain.EntryResponse, error) {
	if entry.Status != domain.StatusPublished && entry.Status != domain.StatusChanged {
		return nil, common.ErrEntryNotFound
	}

	resp := entry.ToResponse()
	resp.ScheduledAction = nil // 예약 정보는 공개 API에 노출하지 않는다

	if entry.Status == domain.StatusChanged {
		if entry.PublishedVersion == nil {
			return nil, common.ErrSnapshotNotFound
		}
		snap, err := s.snapshotRepo.FindByEntryAndVersion(entry.ID, *entry.PublishedVersion)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.ErrSnapshotNotFound
			}
			return nil, err
		}
		resp.Fields = snap.Fields
		resp.Version = snap.Version
		resp.Status = domain.StatusPublished
	}
	return resp, nil
}

// ========================================
// 내부 헬퍼
// ========================================

// loadEntry reads the entry scoped to its space and environment
func (s *EntryService) loadEntry(spaceID string, envID, id uint64) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindByID(spaceID, envID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// casUpdate performs the single conditional UPDATE behind every transition
func (s *EntryService) casUpdate(id uint64, expectedVersion uint, updates map[string]interface{}) error {
	if err := s.entryRepo.UpdateWithVersion(id, expectedVersion, updates); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			entryConflictsTotal.Inc()
			return common.ErrConcurrentModification
		}
		return err
	}
	return nil
}

// casUpdateFrom is casUpdate with a source-status condition, for transitions
// that keep the version unchanged
func (s *EntryService) casUpdateFrom(id uint64, expectedVersion uint, fromStatus []string, updates map[string]interface{}) error {
	if err := s.entryRepo.UpdateWithVersionAndStatus(id, expectedVersion, fromStatus, updates); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			entryConflictsTotal.Inc()
			return common.ErrConcurrentModification
		}
		return err
	}
	return nil
}

// mergeContext resolves the field definitions and default locale that drive
// the save merge. found reports whether the content type exists; when it does
// not, definitions are nil and unknown fields merge per locale.
func (s *EntryService) mergeContext(spaceID string, envID uint64, contentType string) (domain.FieldDefinitions, string, bool, error) {
	space, err := s.spaceRepo.FindByID(spaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", false, common.ErrSpaceNotFound
		}
		return nil, "", false, err
	}

	ctype, err := s.ctypeRepo.FindByTypeID(envID, contentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, space.DefaultLocale, false, nil
		}
		return nil, "", false, err
	}
	return ctype.Fields, space.DefaultLocale, true, nil
}

// applyBeforeSave runs the entry.before_save filter chain over the merged
// fields. Filters may rewrite field values; anything else is ignored.
func (s *EntryService) applyBeforeSave(spaceID, contentType string, fields domain.FieldMap) domain.FieldMap {
	if s.hooks == nil {
		return fields
	}
	out := s.hooks.Apply(hook.HookEntryBeforeSave, map[string]interface{}{
		"space_id":     spaceID,
		"content_type": contentType,
		"fields":       fields,
	})
	if filtered, ok := out["fields"].(domain.FieldMap); ok && filtered != nil {
		return filtered
	}
	return fields
}

// notify fires the committed-transition hooks. Hook failures are logged by
// the manager and never roll back the transition.
func (s *EntryService) notify(event string, entry *domain.Entry, actor Actor) {
	payload := entryEventPayload(entry, actor)
	if s.hooks != nil {
		s.hooks.Do(event, payload)
	}
	if s.events != nil {
		s.events.PublishAsync("entry-service", event, payload)
	}
}

// notifySchedule fires schedule lifecycle hooks
func (s *EntryService) notifySchedule(event string, entry *domain.Entry, actor Actor, actionID, reason string) {
	payload := entryEventPayload(entry, actor)
	if actionID != "" {
		payload["action_id"] = actionID
	}
	if reason != "" {
		payload["reason"] = reason
	}
	if s.hooks != nil {
		s.hooks.Do(event, payload)
	}
	if s.events != nil {
		s.events.PublishAsync("entry-service", event, payload)
	}
}

func entryEventPayload(entry *domain.Entry, actor Actor) map[string]interface{} {
	return map[string]interface{}{
		"entry_id":       entry.ID,
		"space_id":       entry.SpaceID,
		"environment_id": entry.EnvironmentID,
		"content_type":   entry.ContentType,
		"status":         string(entry.Status),
		"version":        entry.Version,
		"actor_id":       actor.UserID,
	}
}

// invalidateDelivery drops the cached public copy and the list caches
func (s *EntryService) invalidateDelivery(entry *domain.Entry) {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	if err := s.cache.InvalidatePublishedEntry(ctx, entry.SpaceID, entry.EnvironmentID, entry.ID); err != nil {
		log.Printf("[WARN] 발행 엔트리 캐시 무효화 실패: entry=%d: %v", entry.ID, err)
	}
	s.invalidateLists(entry.SpaceID, entry.EnvironmentID)
}

// invalidateLists drops the entry list caches for an environment
func (s *EntryService) invalidateLists(spaceID string, envID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEntryLists(context.Background(), spaceID, envID); err != nil {
		log.Printf("[WARN] 엔트리 목록 캐시 무효화 실패: space=%s env=%d: %v", spaceID, envID, err)
	}
}

// publishSnapshot captures the entry's current fields for the version ledger
func publishSnapshot(entry *domain.Entry, actor Actor) *domain.EntrySnapshot {
	return &domain.EntrySnapshot{
		EntryID:     entry.ID,
		Version:     entry.Version,
		ContentType: entry.ContentType,
		Fields:      entry.Fields.Clone(),
		Status:      string(domain.StatusPublished),
		PublishedBy: actor.UserID,
	}
}

func clampFilter(filter *repository.EntryFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}
