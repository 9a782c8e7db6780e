package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/hook"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"gorm.io/gorm"
)

// TransitionExecutor is how the sweep re-enters the entry façade. The
// scheduler never mutates entry status itself; it only invokes the same
// lifecycle operations a user would, as the system actor.
type TransitionExecutor interface {
	Publish(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error)
	Unpublish(actor Actor, spaceID string, envID, id uint64) (*domain.Entry, error)
}

// SchedulerService owns the dual write behind every scheduled action: the
// durable record (authoritative for "when did it run and what happened") and
// the copy embedded on the entry row (authoritative for "is one pending").
// No other component writes either side.
type SchedulerService struct {
	actionRepo repository.ScheduledActionRepository
	entryRepo  repository.EntryRepository
	authorizer Authorizer

	executor TransitionExecutor // set after construction
	hooks    *hook.HookManager  // optional
	events   *hook.EventBus     // optional

	interval  time.Duration
	batchSize int

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(
	actionRepo repository.ScheduledActionRepository,
	entryRepo repository.EntryRepository,
	authorizer Authorizer,
	intervalSeconds, batchSize int,
) *SchedulerService {
	if intervalSeconds < 1 {
		intervalSeconds = 10
	}
	if batchSize < 1 {
		batchSize = 50
	}
	return &SchedulerService{
		actionRepo: actionRepo,
		entryRepo:  entryRepo,
		authorizer: authorizer,
		interval:   time.Duration(intervalSeconds) * time.Second,
		batchSize:  batchSize,
	}
}

// SetExecutor wires the entry façade the sweep executes transitions through
func (s *SchedulerService) SetExecutor(executor TransitionExecutor) {
	s.executor = executor
}

// SetHooks wires the hook manager and event bus (optional)
func (s *SchedulerService) SetHooks(hooks *hook.HookManager, events *hook.EventBus) {
	s.hooks = hooks
	s.events = events
}

// ========================================
// 등록 / 취소
// ========================================

// Schedule registers a deferred publish/unpublish for the entry. At most one
// action can be outstanding per entry: an existing pending registration is
// cancelled by the new one. The durable record is written before the
// embedded copy so a crash in between still executes the action; the reverse
// order would leave a pointer to work that never runs.
func (s *SchedulerService) Schedule(actor Actor, entry *domain.Entry, req *domain.ScheduleActionRequest) (*domain.ScheduledAction, error) {
	if req.Action != domain.ActionPublish && req.Action != domain.ActionUnpublish {
		return nil, common.ErrInvalidSchedule
	}
	if !req.ScheduledFor.After(time.Now()) {
		return nil, common.ErrInvalidSchedule
	}
	if err := guardSchedule(entry); err != nil {
		return nil, err
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, common.ErrInvalidSchedule
		}
	}

	// 기존 예약이 있으면 새 등록이 대체한다
	if n, err := s.actionRepo.CancelPendingByEntry(entry.ID); err != nil {
		return nil, fmt.Errorf("기존 예약 취소 실패: %w", err)
	} else if n > 0 {
		s.notify(hook.HookScheduleCancelled, entry, actor, "", "superseded")
	}

	action := &domain.ScheduledAction{
		ActionID:      uuid.NewString(),
		SpaceID:       entry.SpaceID,
		EnvironmentID: entry.EnvironmentID,
		EntryID:       entry.ID,
		Action:        req.Action,
		Status:        domain.ScheduleStatusPending,
		ScheduledFor:  req.ScheduledFor,
		Timezone:      req.Timezone,
		CreatedBy:     actor.UserID,
	}
	if err := s.actionRepo.Create(action); err != nil {
		return nil, fmt.Errorf("예약 레코드 생성 실패: %w", err)
	}

	if err := s.writeEmbedded(entry, action.ToInfo()); err != nil {
		return nil, err
	}

	s.notify(hook.HookScheduleCreated, entry, actor, action.ActionID, "")
	return action, nil
}

// Cancel clears the entry's pending action. Nothing pending is a no-op.
// Racing a sweep is resolved by whoever wins the record's conditional write:
// when the sweep already claimed it, Cancel backs off and lets the sweep
// finish (it clears the embedded copy itself).
func (s *SchedulerService) Cancel(actor Actor, entry *domain.Entry) error {
	info, err := entry.PendingAction()
	if err != nil {
		log.Printf("[WARN] 엔트리 예약 필드 파싱 실패: entry=%d: %v", entry.ID, err)
		return nil
	}
	if info == nil {
		return nil
	}

	won, err := s.actionRepo.CancelPending(info.ActionID)
	if err != nil {
		return fmt.Errorf("예약 취소 실패: %w", err)
	}
	if !won {
		// 스윕이 이미 선점 — 조용히 물러난다
		return nil
	}

	if err := s.writeEmbedded(entry, nil); err != nil {
		return err
	}
	s.notify(hook.HookScheduleCancelled, entry, actor, info.ActionID, "cancelled")
	return nil
}

// ========================================
// 조회
// ========================================

// ListForEntry returns every scheduled action record of an entry, including
// terminal ones — the only window onto asynchronous execution outcomes.
func (s *SchedulerService) ListForEntry(actor Actor, spaceID string, entryID uint64) ([]*domain.ScheduledAction, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	return s.actionRepo.ListByEntry(entryID)
}

// ListForSpace returns scheduled actions across a space, newest first
func (s *SchedulerService) ListForSpace(actor Actor, spaceID, status string, page, limit int) ([]*domain.ScheduledAction, int64, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.actionRepo.ListBySpace(spaceID, status, page, limit)
}

// GetAction returns one scheduled action record by its public id
func (s *SchedulerService) GetAction(actor Actor, spaceID, actionID string) (*domain.ScheduledAction, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	action, err := s.actionRepo.FindByActionID(actionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrScheduledActionNotFound
		}
		return nil, err
	}
	if action.SpaceID != spaceID {
		return nil, common.ErrScheduledActionNotFound
	}
	return action, nil
}

// ========================================
// 스윕
// ========================================

// Sweep claims and executes every due action. The conditional claim
// (pending → claimed) is the exactly-once boundary: concurrent sweeps and
// racing cancels all contend on that single write, and only the winner acts.
// Finding nothing due is the normal case and is not logged.
func (s *SchedulerService) Sweep(ctx context.Context, now time.Time) (executed, failed int, err error) {
	start := time.Now()
	schedulerSweepsTotal.Inc()
	defer func() {
		schedulerSweepDuration.Observe(time.Since(start).Seconds())
	}()

	due, err := s.actionRepo.FindDue(now, s.batchSize)
	if err != nil {
		return 0, 0, fmt.Errorf("예약 스캔 실패: %w", err)
	}

	for _, action := range due {
		select {
		case <-ctx.Done():
			return executed, failed, ctx.Err()
		default:
		}

		won, claimErr := s.actionRepo.Claim(action.ID)
		if claimErr != nil {
			log.Printf("[WARN] 예약 선점 실패: action=%s: %v", action.ActionID, claimErr)
			continue
		}
		if !won {
			// 다른 스윕 또는 취소가 먼저 처리함
			continue
		}

		if execErr := s.execute(action); execErr != nil {
			failed++
			schedulerActionsTotal.WithLabelValues(action.Action, "failed").Inc()
			s.markFailed(action, execErr)
		} else {
			executed++
			schedulerActionsTotal.WithLabelValues(action.Action, "completed").Inc()
		}
	}
	return executed, failed, nil
}

// execute runs one claimed action through the entry façade as the system
// actor, records the outcome, and clears the embedded copy.
func (s *SchedulerService) execute(action *domain.ScheduledAction) error {
	if s.executor == nil {
		return errors.New("transition executor is not configured")
	}

	var entry *domain.Entry
	var err error
	switch action.Action {
	case domain.ActionPublish:
		entry, err = s.executor.Publish(SystemActor, action.SpaceID, action.EnvironmentID, action.EntryID)
	case domain.ActionUnpublish:
		entry, err = s.executor.Unpublish(SystemActor, action.SpaceID, action.EnvironmentID, action.EntryID)
	default:
		err = fmt.Errorf("unknown action %q", action.Action)
	}
	if err != nil {
		return err
	}

	executedAt := time.Now()
	if markErr := s.actionRepo.MarkCompleted(action.ID, executedAt); markErr != nil {
		log.Printf("[ERROR] 예약 완료 기록 실패: action=%s: %v", action.ActionID, markErr)
	}
	s.clearEmbedded(action)
	s.notify(hook.HookScheduleFired, entry, SystemActor, action.ActionID, "")
	log.Printf("[INFO] 예약 실행 완료: action=%s entry=%d type=%s", action.ActionID, action.EntryID, action.Action)
	return nil
}

// markFailed records a failed execution. The entry keeps its prior state and
// the action is not rescheduled; the error string is what the inspection API
// later shows.
func (s *SchedulerService) markFailed(action *domain.ScheduledAction, execErr error) {
	log.Printf("[WARN] 예약 실행 실패: action=%s entry=%d: %v", action.ActionID, action.EntryID, execErr)
	if err := s.actionRepo.MarkFailed(action.ID, time.Now(), execErr.Error()); err != nil {
		log.Printf("[ERROR] 예약 실패 기록 실패: action=%s: %v", action.ActionID, err)
	}
	s.clearEmbedded(action)
}

// clearEmbedded removes the entry's embedded pointer if it still references
// this action. A newer registration may have replaced it while the sweep was
// executing; that one must survive.
func (s *SchedulerService) clearEmbedded(action *domain.ScheduledAction) {
	entry, err := s.entryRepo.FindByID(action.SpaceID, action.EnvironmentID, action.EntryID)
	if err != nil {
		return // 엔트리가 삭제된 경우 등 — 지울 것이 없다
	}
	info, err := entry.PendingAction()
	if err != nil || info == nil || info.ActionID != action.ActionID {
		return
	}
	if err := s.entryRepo.UpdateScheduledAction(entry.ID, nil); err != nil {
		log.Printf("[WARN] 엔트리 예약 필드 해제 실패: entry=%d: %v", entry.ID, err)
	}
}

// writeEmbedded stores (or clears) the embedded copy on the entry row
func (s *SchedulerService) writeEmbedded(entry *domain.Entry, info *domain.ScheduledActionInfo) error {
	if err := entry.SetPendingAction(info); err != nil {
		return err
	}
	if err := s.entryRepo.UpdateScheduledAction(entry.ID, entry.ScheduledAction); err != nil {
		return fmt.Errorf("엔트리 예약 필드 갱신 실패: %w", err)
	}
	return nil
}

// ========================================
// 백그라운드 루프
// ========================================

// Start launches the periodic sweep loop
func (s *SchedulerService) Start() {
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.loop()
	log.Printf("[INFO] 스케줄러 시작: interval=%s batch=%d", s.interval, s.batchSize)
}

func (s *SchedulerService) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, _, err := s.Sweep(context.Background(), time.Now()); err != nil {
				log.Printf("[ERROR] 스윕 실패: %v", err)
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish
func (s *SchedulerService) Stop() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
	log.Printf("[INFO] 스케줄러 중지")
}

// notify fires schedule lifecycle hooks
func (s *SchedulerService) notify(event string, entry *domain.Entry, actor Actor, actionID, reason string) {
	if entry == nil {
		return
	}
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
		s.events.PublishAsync("scheduler", event, payload)
	}
}
