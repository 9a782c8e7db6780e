package repository

import (
	"errors"

	"github.com/vellum-cms/vellum-backend/internal/domain"
	"gorm.io/gorm"
)

var (
	// ErrVersionConflict indicates that a concurrent modification was detected
	ErrVersionConflict = errors.New("다른 사용자가 먼저 수정했습니다. 새로고침 후 다시 시도해주세요")
)

// EntryFilter narrows entry listings
type EntryFilter struct {
	ContentType string
	Status      string
	Page        int
	Limit       int
}

// EntryRepository handles entry data operations
type EntryRepository interface {
	Create(entry *domain.Entry) error
	// FindByID returns an entry scoped to its space and environment
	FindByID(spaceID string, envID, id uint64) (*domain.Entry, error)
	List(spaceID string, envID uint64, filter EntryFilter) ([]*domain.Entry, int64, error)
	// ListPublished returns entries visible on the delivery API
	ListPublished(spaceID string, envID uint64, filter EntryFilter) ([]*domain.Entry, int64, error)
	// UpdateWithVersion applies updates guarded by the expected version.
	// Returns ErrVersionConflict if the row changed underneath the caller.
	UpdateWithVersion(id uint64, expectedVersion uint, updates map[string]interface{}) error
	// UpdateWithVersionAndStatus additionally requires the current status to
	// be one of fromStatus. Transitions that leave the version unchanged need
	// this: the version check alone cannot see a concurrent identical
	// transition.
	UpdateWithVersionAndStatus(id uint64, expectedVersion uint, fromStatus []string, updates map[string]interface{}) error
	// UpdateScheduledAction replaces the embedded scheduled action column.
	// Not version-guarded: the embedded copy is ancillary display state.
	UpdateScheduledAction(id uint64, raw *string) error
	Delete(id uint64) error
	CountByEnvironment(envID uint64) (int64, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(entry *domain.Entry) error {
	return r.db.Create(entry).Error
}

func (r *entryRepository) FindByID(spaceID string, envID, id uint64) (*domain.Entry, error) {
	var entry domain.Entry
	err := r.db.Where("id = ? AND space_id = ? AND environment_id = ?", id, spaceID, envID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) List(spaceID string, envID uint64, filter EntryFilter) ([]*domain.Entry, int64, error) {
	var entries []*domain.Entry
	var total int64

	query := r.db.Model(&domain.Entry{}).
		Where("space_id = ? AND environment_id = ?", spaceID, envID)
	if filter.ContentType != "" {
		query = query.Where("content_type = ?", filter.ContentType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("updated_at DESC, id DESC").Offset(offset).Limit(filter.Limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *entryRepository) ListPublished(spaceID string, envID uint64, filter EntryFilter) ([]*domain.Entry, int64, error) {
	var entries []*domain.Entry
	var total int64

	query := r.db.Model(&domain.Entry{}).
		Where("space_id = ? AND environment_id = ? AND status IN ?",
			spaceID, envID, []string{string(domain.StatusPublished), string(domain.StatusChanged)})
	if filter.ContentType != "" {
		query = query.Where("content_type = ?", filter.ContentType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("published_at DESC, id DESC").Offset(offset).Limit(filter.Limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *entryRepository) UpdateWithVersion(id uint64, expectedVersion uint, updates map[string]interface{}) error {
	result := r.db.Model(&domain.Entry{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *entryRepository) UpdateWithVersionAndStatus(id uint64, expectedVersion uint, fromStatus []string, updates map[string]interface{}) error {
	result := r.db.Model(&domain.Entry{}).
		Where("id = ? AND version = ? AND status IN ?", id, expectedVersion, fromStatus).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *entryRepository) UpdateScheduledAction(id uint64, raw *string) error {
	return r.db.Model(&domain.Entry{}).Where("id = ?", id).
		Update("scheduled_action", raw).Error
}

func (r *entryRepository) Delete(id uint64) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entryRepository) CountByEnvironment(envID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Entry{}).
		Where("environment_id = ?", envID).
		Count(&count).Error
	return count, err
}
