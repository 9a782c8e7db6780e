package repository

import (
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"gorm.io/gorm"
)

// SnapshotRepository handles publish snapshot data operations.
// Snapshots are append-only; there is deliberately no update method.
type SnapshotRepository interface {
	Create(snapshot *domain.EntrySnapshot) error
	FindByID(id uint64) (*domain.EntrySnapshot, error)
	// FindByEntry returns snapshots newest first
	FindByEntry(entryID uint64, page, limit int) ([]*domain.EntrySnapshot, int64, error)
	FindByEntryAndVersion(entryID uint64, version uint) (*domain.EntrySnapshot, error)
	// DeleteByEntry removes all snapshots when their entry is deleted
	DeleteByEntry(entryID uint64) error
}

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(snapshot *domain.EntrySnapshot) error {
	return r.db.Create(snapshot).Error
}

func (r *snapshotRepository) FindByID(id uint64) (*domain.EntrySnapshot, error) {
	var snapshot domain.EntrySnapshot
	err := r.db.Where("id = ?", id).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) FindByEntry(entryID uint64, page, limit int) ([]*domain.EntrySnapshot, int64, error) {
	var snapshots []*domain.EntrySnapshot
	var total int64

	query := r.db.Model(&domain.EntrySnapshot{}).Where("entry_id = ?", entryID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("version DESC").Offset(offset).Limit(limit).Find(&snapshots).Error; err != nil {
		return nil, 0, err
	}
	return snapshots, total, nil
}

func (r *snapshotRepository) FindByEntryAndVersion(entryID uint64, version uint) (*domain.EntrySnapshot, error) {
	var snapshot domain.EntrySnapshot
	err := r.db.Where("entry_id = ? AND version = ?", entryID, version).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) DeleteByEntry(entryID uint64) error {
	return r.db.Where("entry_id = ?", entryID).Delete(&domain.EntrySnapshot{}).Error
}
