package repository

import (
	"time"

	"github.com/vellum-cms/vellum-backend/internal/domain"
	"gorm.io/gorm"
)

// ScheduledActionRepository handles durable scheduled action records.
// State changes go through conditional updates so that concurrent cancel
// and sweep calls resolve to exactly one winner.
type ScheduledActionRepository interface {
	Create(action *domain.ScheduledAction) error
	FindByActionID(actionID string) (*domain.ScheduledAction, error)
	FindPendingByEntry(entryID uint64) (*domain.ScheduledAction, error)
	ListByEntry(entryID uint64) ([]*domain.ScheduledAction, error)
	ListBySpace(spaceID string, status string, page, limit int) ([]*domain.ScheduledAction, int64, error)
	// FindDue returns pending actions whose scheduled time has arrived
	FindDue(now time.Time, limit int) ([]*domain.ScheduledAction, error)
	// Claim flips pending -> claimed. Reports whether this caller won the claim.
	Claim(id uint64) (bool, error)
	// CancelPending flips pending -> cancelled. Reports whether the record was
	// still pending; false means the sweep already claimed it.
	CancelPending(actionID string) (bool, error)
	// CancelPendingByEntry cancels every pending action for an entry and
	// returns how many were cancelled
	CancelPendingByEntry(entryID uint64) (int64, error)
	MarkCompleted(id uint64, executedAt time.Time) error
	MarkFailed(id uint64, executedAt time.Time, errMsg string) error
	DeleteByEntry(entryID uint64) error
}

type scheduledActionRepository struct {
	db *gorm.DB
}

// NewScheduledActionRepository creates a new ScheduledActionRepository
func NewScheduledActionRepository(db *gorm.DB) ScheduledActionRepository {
	return &scheduledActionRepository{db: db}
}

func (r *scheduledActionRepository) Create(action *domain.ScheduledAction) error {
	return r.db.Create(action).Error
}

func (r *scheduledActionRepository) FindByActionID(actionID string) (*domain.ScheduledAction, error) {
	var action domain.ScheduledAction
	err := r.db.Where("action_id = ?", actionID).First(&action).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func (r *scheduledActionRepository) FindPendingByEntry(entryID uint64) (*domain.ScheduledAction, error) {
	var action domain.ScheduledAction
	err := r.db.Where("entry_id = ? AND status = ?", entryID, domain.ScheduleStatusPending).
		First(&action).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func (r *scheduledActionRepository) ListByEntry(entryID uint64) ([]*domain.ScheduledAction, error) {
	var actions []*domain.ScheduledAction
	err := r.db.Where("entry_id = ?", entryID).
		Order("created_at DESC").
		Find(&actions).Error
	return actions, err
}

func (r *scheduledActionRepository) ListBySpace(spaceID string, status string, page, limit int) ([]*domain.ScheduledAction, int64, error) {
	var actions []*domain.ScheduledAction
	var total int64

	query := r.db.Model(&domain.ScheduledAction{}).Where("space_id = ?", spaceID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("scheduled_for DESC").Offset(offset).Limit(limit).Find(&actions).Error; err != nil {
		return nil, 0, err
	}
	return actions, total, nil
}

func (r *scheduledActionRepository) FindDue(now time.Time, limit int) ([]*domain.ScheduledAction, error) {
	var actions []*domain.ScheduledAction
	err := r.db.Where("status = ? AND scheduled_for <= ?", domain.ScheduleStatusPending, now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&actions).Error
	return actions, err
}

func (r *scheduledActionRepository) Claim(id uint64) (bool, error) {
	result := r.db.Model(&domain.ScheduledAction{}).
		Where("id = ? AND status = ?", id, domain.ScheduleStatusPending).
		Update("status", domain.ScheduleStatusClaimed)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *scheduledActionRepository) CancelPending(actionID string) (bool, error) {
	result := r.db.Model(&domain.ScheduledAction{}).
		Where("action_id = ? AND status = ?", actionID, domain.ScheduleStatusPending).
		Update("status", domain.ScheduleStatusCancelled)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *scheduledActionRepository) CancelPendingByEntry(entryID uint64) (int64, error) {
	result := r.db.Model(&domain.ScheduledAction{}).
		Where("entry_id = ? AND status = ?", entryID, domain.ScheduleStatusPending).
		Update("status", domain.ScheduleStatusCancelled)

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *scheduledActionRepository) MarkCompleted(id uint64, executedAt time.Time) error {
	return r.db.Model(&domain.ScheduledAction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      domain.ScheduleStatusCompleted,
			"executed_at": executedAt,
		}).Error
}

func (r *scheduledActionRepository) MarkFailed(id uint64, executedAt time.Time, errMsg string) error {
	return r.db.Model(&domain.ScheduledAction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      domain.ScheduleStatusFailed,
			"executed_at": executedAt,
			"error":       errMsg,
		}).Error
}

func (r *scheduledActionRepository) DeleteByEntry(entryID uint64) error {
	return r.db.Where("entry_id = ?", entryID).Delete(&domain.ScheduledAction{}).Error
}
