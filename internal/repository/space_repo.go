package repository

import (
	"time"

	"github.com/vellum-cms/vellum-backend/internal/domain"
	"gorm.io/gorm"
)

// SpaceRepository handles spaces, their environments and memberships
type SpaceRepository interface {
	Create(space *domain.Space) error
	FindByID(id string) (*domain.Space, error)
	FindBySubdomain(subdomain string) (*domain.Space, error)
	// List returns spaces with optional status filter: "active", "suspended" or ""
	List(status string, page, limit int) ([]*domain.Space, int64, error)
	Update(space *domain.Space) error
	SetSuspended(id string, suspended bool) error
	Delete(id string) error

	CreateEnvironment(env *domain.Environment) error
	FindEnvironment(spaceID, name string) (*domain.Environment, error)
	ListEnvironments(spaceID string) ([]*domain.Environment, error)
	DeleteEnvironment(spaceID, name string) error

	AddMember(member *domain.SpaceMember) error
	FindMember(spaceID string, userID uint64) (*domain.SpaceMember, error)
	ListMembers(spaceID string) ([]*domain.SpaceMember, error)
	UpdateMemberRole(spaceID string, userID uint64, role string) error
	RemoveMember(spaceID string, userID uint64) error
}

type spaceRepository struct {
	db *gorm.DB
}

// NewSpaceRepository creates a new SpaceRepository
func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

func (r *spaceRepository) Create(space *domain.Space) error {
	return r.db.Create(space).Error
}

func (r *spaceRepository) FindByID(id string) (*domain.Space, error) {
	var space domain.Space
	err := r.db.Where("id = ?", id).First(&space).Error
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepository) FindBySubdomain(subdomain string) (*domain.Space, error) {
	var space domain.Space
	err := r.db.Where("subdomain = ?", subdomain).First(&space).Error
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepository) List(status string, page, limit int) ([]*domain.Space, int64, error) {
	var spaces []*domain.Space
	var total int64

	query := r.db.Model(&domain.Space{})
	switch status {
	case "active":
		query = query.Where("suspended = ?", false)
	case "suspended":
		query = query.Where("suspended = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&spaces).Error; err != nil {
		return nil, 0, err
	}
	return spaces, total, nil
}

func (r *spaceRepository) Update(space *domain.Space) error {
	return r.db.Save(space).Error
}

func (r *spaceRepository) SetSuspended(id string, suspended bool) error {
	updates := map[string]interface{}{"suspended": suspended}
	if suspended {
		updates["suspended_at"] = time.Now()
	} else {
		updates["suspended_at"] = nil
	}

	result := r.db.Model(&domain.Space{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *spaceRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Space{}).Error
}

// ========================================
// Environments
// ========================================

func (r *spaceRepository) CreateEnvironment(env *domain.Environment) error {
	return r.db.Create(env).Error
}

func (r *spaceRepository) FindEnvironment(spaceID, name string) (*domain.Environment, error) {
	var env domain.Environment
	err := r.db.Where("space_id = ? AND name = ?", spaceID, name).First(&env).Error
	if err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *spaceRepository) ListEnvironments(spaceID string) ([]*domain.Environment, error) {
	var envs []*domain.Environment
	err := r.db.Where("space_id = ?", spaceID).Order("id ASC").Find(&envs).Error
	return envs, err
}

func (r *spaceRepository) DeleteEnvironment(spaceID, name string) error {
	result := r.db.Where("space_id = ? AND name = ?", spaceID, name).
		Delete(&domain.Environment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ========================================
// Members
// ========================================

func (r *spaceRepository) AddMember(member *domain.SpaceMember) error {
	return r.db.Create(member).Error
}

func (r *spaceRepository) FindMember(spaceID string, userID uint64) (*domain.SpaceMember, error) {
	var member domain.SpaceMember
	err := r.db.Where("space_id = ? AND user_id = ?", spaceID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *spaceRepository) ListMembers(spaceID string) ([]*domain.SpaceMember, error) {
	var members []*domain.SpaceMember
	err := r.db.Where("space_id = ?", spaceID).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *spaceRepository) UpdateMemberRole(spaceID string, userID uint64, role string) error {
	result := r.db.Model(&domain.SpaceMember{}).
		Where("space_id = ? AND user_id = ?", spaceID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *spaceRepository) RemoveMember(spaceID string, userID uint64) error {
	result := r.db.Where("space_id = ? AND user_id = ?", spaceID, userID).
		Delete(&domain.SpaceMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
