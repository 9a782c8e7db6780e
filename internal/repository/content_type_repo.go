package repository

import (
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentTypeRepository handles content type definitions
type ContentTypeRepository interface {
	// Upsert creates or replaces a content type keyed by (environment, type id)
	Upsert(contentType *domain.ContentType) error
	FindByTypeID(envID uint64, typeID string) (*domain.ContentType, error)
	List(spaceID string, envID uint64) ([]*domain.ContentType, error)
	Delete(envID uint64, typeID string) error
}

type contentTypeRepository struct {
	db *gorm.DB
}

// NewContentTypeRepository creates a new ContentTypeRepository
func NewContentTypeRepository(db *gorm.DB) ContentTypeRepository {
	return &contentTypeRepository{db: db}
}

// Upsert uses ON DUPLICATE KEY UPDATE on the (environment_id, type_id) key
func (r *contentTypeRepository) Upsert(contentType *domain.ContentType) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "environment_id"}, {Name: "type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "display_field", "fields", "updated_at"}),
	}).Create(contentType).Error
}

func (r *contentTypeRepository) FindByTypeID(envID uint64, typeID string) (*domain.ContentType, error) {
	var contentType domain.ContentType
	err := r.db.Where("environment_id = ? AND type_id = ?", envID, typeID).
		First(&contentType).Error
	if err != nil {
		return nil, err
	}
	return &contentType, nil
}

func (r *contentTypeRepository) List(spaceID string, envID uint64) ([]*domain.ContentType, error) {
	var contentTypes []*domain.ContentType
	err := r.db.Where("space_id = ? AND environment_id = ?", spaceID, envID).
		Order("type_id ASC").
		Find(&contentTypes).Error
	return contentTypes, err
}

func (r *contentTypeRepository) Delete(envID uint64, typeID string) error {
	result := r.db.Where("environment_id = ? AND type_id = ?", envID, typeID).
		Delete(&domain.ContentType{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
