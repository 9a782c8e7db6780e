package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"github.com/vellum-cms/vellum-backend/pkg/cache"
	"gorm.io/gorm"
)

// ContentTypeService handles content type schema management
type ContentTypeService struct {
	ctypeRepo  repository.ContentTypeRepository
	entryRepo  repository.EntryRepository
	authorizer Authorizer

	cache cache.Service // optional
}

// NewContentTypeService creates a new ContentTypeService
func NewContentTypeService(
	ctypeRepo repository.ContentTypeRepository,
	entryRepo repository.EntryRepository,
	authorizer Authorizer,
) *ContentTypeService {
	return &ContentTypeService{
		ctypeRepo:  ctypeRepo,
		entryRepo:  entryRepo,
		authorizer: authorizer,
	}
}

// SetCache wires the Redis cache (optional)
func (s *ContentTypeService) SetCache(c cache.Service) {
	s.cache = c
}

// Upsert creates or replaces a content type. The (environment, type id) pair
// is the key: repeated upserts replace name, fields and display field.
func (s *ContentTypeService) Upsert(actor Actor, spaceID string, envID uint64, typeID string, req *domain.UpsertContentTypeRequest) (*domain.ContentType, error) {
	if err := s.authorizer.Can(actor, spaceID, PermManageTypes); err != nil {
		return nil, err
	}
	if err := common.ValidateIdentifier(typeID); err != nil {
		return nil, err
	}
	if err := validateFieldDefinitions(req.Fields, req.DisplayField); err != nil {
		return nil, err
	}

	contentType := &domain.ContentType{
		SpaceID:       spaceID,
		EnvironmentID: envID,
		TypeID:        typeID,
		Name:          req.Name,
		Description:   req.Description,
		DisplayField:  req.DisplayField,
		Fields:        req.Fields,
	}
	if err := s.ctypeRepo.Upsert(contentType); err != nil {
		return nil, fmt.Errorf("콘텐츠 타입 저장 실패: %w", err)
	}

	// 업데이트 경로에서는 기존 행의 ID가 필요하므로 다시 읽는다
	saved, err := s.ctypeRepo.FindByTypeID(envID, typeID)
	if err != nil {
		return nil, err
	}

	s.invalidate(envID, typeID)
	return saved, nil
}

// Get returns one content type, read through the cache
func (s *ContentTypeService) Get(actor Actor, spaceID string, envID uint64, typeID string) (*domain.ContentType, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := s.cache.GetContentType(context.Background(), envID, typeID); err == nil {
			var contentType domain.ContentType
			if jsonErr := json.Unmarshal(data, &contentType); jsonErr == nil {
				return &contentType, nil
			}
		}
	}

	contentType, err := s.ctypeRepo.FindByTypeID(envID, typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrContentTypeNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetContentType(context.Background(), envID, typeID, contentType); err != nil {
			log.Printf("[WARN] 콘텐츠 타입 캐시 저장 실패: %s: %v", typeID, err)
		}
	}
	return contentType, nil
}

// List returns the environment's content types
func (s *ContentTypeService) List(actor Actor, spaceID string, envID uint64) ([]*domain.ContentType, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	return s.ctypeRepo.List(spaceID, envID)
}

// ListPublic returns the environment's content types without an actor check.
// The delivery API serves schemas so clients can render entries; a content
// type holds no tenant secrets.
func (s *ContentTypeService) ListPublic(spaceID string, envID uint64) ([]*domain.ContentType, error) {
	return s.ctypeRepo.List(spaceID, envID)
}

// Delete removes a content type. Types still referenced by entries in the
// environment cannot be deleted.
func (s *ContentTypeService) Delete(actor Actor, spaceID string, envID uint64, typeID string) error {
	if err := s.authorizer.Can(actor, spaceID, PermManageTypes); err != nil {
		return err
	}

	_, total, err := s.entryRepo.List(spaceID, envID, repository.EntryFilter{
		ContentType: typeID,
		Page:        1,
		Limit:       1,
	})
	if err != nil {
		return fmt.Errorf("엔트리 확인 실패: %w", err)
	}
	if total > 0 {
		return fmt.Errorf("사용 중인 콘텐츠 타입은 삭제할 수 없습니다 (엔트리 %d개): %w", total, common.ErrInvalidInput)
	}

	if err := s.ctypeRepo.Delete(envID, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrContentTypeNotFound
		}
		return err
	}

	s.invalidate(envID, typeID)
	return nil
}

func (s *ContentTypeService) invalidate(envID uint64, typeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateContentType(context.Background(), envID, typeID); err != nil {
		log.Printf("[WARN] 콘텐츠 타입 캐시 무효화 실패: %s: %v", typeID, err)
	}
}

// validateFieldDefinitions checks field identifiers, duplicates and the
// display field reference
func validateFieldDefinitions(fields domain.FieldDefinitions, displayField string) error {
	if len(fields) == 0 {
		return fmt.Errorf("필드 정의가 비어 있습니다: %w", common.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if err := common.ValidateIdentifier(field.ID); err != nil {
			return fmt.Errorf("필드 ID %q: %w", field.ID, err)
		}
		if seen[field.ID] {
			return fmt.Errorf("중복된 필드 ID %q: %w", field.ID, common.ErrInvalidInput)
		}
		seen[field.ID] = true
	}
	if displayField != "" && !seen[displayField] {
		return fmt.Errorf("표시 필드 %q 가 필드 목록에 없습니다: %w", displayField, common.ErrInvalidInput)
	}
	return nil
}
