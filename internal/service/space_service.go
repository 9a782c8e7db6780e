package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"github.com/vellum-cms/vellum-backend/pkg/cache"
	"gorm.io/gorm"
)

// SpaceService handles space provisioning, environments and memberships
type SpaceService struct {
	spaceRepo  repository.SpaceRepository
	authorizer Authorizer

	cache cache.Service // optional
}

// NewSpaceService creates a new SpaceService
func NewSpaceService(spaceRepo repository.SpaceRepository, authorizer Authorizer) *SpaceService {
	return &SpaceService{
		spaceRepo:  spaceRepo,
		authorizer: authorizer,
	}
}

// SetCache wires the Redis cache (optional)
func (s *SpaceService) SetCache(c cache.Service) {
	s.cache = c
}

// ========================================
// 프로비저닝
// ========================================

// CreateSpace provisions a new content tenant: the space row, its master
// environment, and the creator's owner membership.
func (s *SpaceService) CreateSpace(actor Actor, req *domain.CreateSpaceRequest) (*domain.Space, error) {
	// 1. Validate subdomain and locale
	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if err := common.ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}
	locale := req.DefaultLocale
	if locale == "" {
		locale = "en-US"
	}
	if err := common.ValidateLocale(locale); err != nil {
		return nil, err
	}
	plan := req.Plan
	if plan == "" {
		plan = domain.PlanFree
	}
	switch plan {
	case domain.PlanFree, domain.PlanTeam, domain.PlanEnterprise:
	default:
		return nil, fmt.Errorf("유효하지 않은 플랜 %q: %w", plan, common.ErrInvalidInput)
	}

	// 2. Check subdomain availability
	if _, err := s.spaceRepo.FindBySubdomain(subdomain); err == nil {
		return nil, common.ErrSubdomainTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("서브도메인 확인 실패: %w", err)
	}

	// 3. Create space
	space := &domain.Space{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Subdomain:     subdomain,
		Plan:          plan,
		DefaultLocale: locale,
	}
	if err := s.spaceRepo.Create(space); err != nil {
		return nil, fmt.Errorf("스페이스 생성 실패: %w", err)
	}

	// 4. Create master environment
	env := &domain.Environment{
		SpaceID: space.ID,
		Name:    domain.DefaultEnvironment,
	}
	if err := s.spaceRepo.CreateEnvironment(env); err != nil {
		return nil, fmt.Errorf("기본 환경 생성 실패: %w", err)
	}

	// 5. Grant owner membership to the creator
	if !actor.System {
		member := &domain.SpaceMember{
			SpaceID: space.ID,
			UserID:  actor.UserID,
			Role:    domain.RoleOwner,
		}
		if err := s.spaceRepo.AddMember(member); err != nil {
			return nil, fmt.Errorf("소유자 권한 설정 실패: %w", err)
		}
	}

	return space, nil
}

// ========================================
// 조회
// ========================================

// GetSpace returns a space for its members
func (s *SpaceService) GetSpace(actor Actor, spaceID string) (*domain.Space, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	return s.loadSpace(spaceID)
}

// GetSpaceBySubdomain resolves the tenant behind a delivery request. The
// result is cached; suspension is the caller's concern.
func (s *SpaceService) GetSpaceBySubdomain(ctx context.Context, subdomain string) (*domain.Space, error) {
	if s.cache != nil {
		if data, err := s.cache.GetSpace(ctx, subdomain); err == nil {
			var space domain.Space
			if jsonErr := json.Unmarshal(data, &space); jsonErr == nil {
				return &space, nil
			}
		}
	}

	space, err := s.spaceRepo.FindBySubdomain(subdomain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSpaceNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSpace(ctx, subdomain, space); err != nil {
			log.Printf("[WARN] 스페이스 캐시 저장 실패: %s: %v", subdomain, err)
		}
	}
	return space, nil
}

// ListSpaces returns all spaces; platform admin only
func (s *SpaceService) ListSpaces(actor Actor, status string, page, limit int) ([]*domain.Space, int64, error) {
	if !actor.System && actor.Role != domain.PlatformRoleAdmin {
		return nil, 0, common.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.spaceRepo.List(status, page, limit)
}

// ========================================
// 설정 변경
// ========================================

// UpdateSpace changes name, plan or default locale
func (s *SpaceService) UpdateSpace(actor Actor, spaceID string, req *domain.UpdateSpaceRequest) (*domain.Space, error) {
	if err := s.authorizer.Can(actor, spaceID, PermManageSpace); err != nil {
		return nil, err
	}
	space, err := s.loadSpace(spaceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		space.Name = *req.Name
	}
	if req.Plan != nil {
		switch *req.Plan {
		case domain.PlanFree, domain.PlanTeam, domain.PlanEnterprise:
			space.Plan = *req.Plan
		default:
			return nil, fmt.Errorf("유효하지 않은 플랜 %q: %w", *req.Plan, common.ErrInvalidInput)
		}
	}
	if req.DefaultLocale != nil {
		if err := common.ValidateLocale(*req.DefaultLocale); err != nil {
			return nil, err
		}
		space.DefaultLocale = *req.DefaultLocale
	}

	if err := s.spaceRepo.Update(space); err != nil {
		return nil, fmt.Errorf("스페이스 업데이트 실패: %w", err)
	}
	s.invalidateSpace(space.Subdomain)
	return space, nil
}

// SetSuspended suspends or reactivates a space; platform admin only.
// A suspended space keeps its data but stops serving both APIs.
func (s *SpaceService) SetSuspended(actor Actor, spaceID string, suspended bool) error {
	if !actor.System && actor.Role != domain.PlatformRoleAdmin {
		return common.ErrForbidden
	}
	space, err := s.loadSpace(spaceID)
	if err != nil {
		return err
	}
	if err := s.spaceRepo.SetSuspended(spaceID, suspended); err != nil {
		return fmt.Errorf("스페이스 정지 상태 변경 실패: %w", err)
	}
	s.invalidateSpace(space.Subdomain)
	return nil
}

// DeleteSpace removes a space row. Owner only; content cleanup is a separate
// offline concern.
func (s *SpaceService) DeleteSpace(actor Actor, spaceID string) error {
	if err := s.authorizer.Can(actor, spaceID, PermOwnSpace); err != nil {
		return err
	}
	space, err := s.loadSpace(spaceID)
	if err != nil {
		return err
	}
	if err := s.spaceRepo.Delete(spaceID); err != nil {
		return fmt.Errorf("스페이스 삭제 실패: %w", err)
	}
	s.invalidateSpace(space.Subdomain)
	return nil
}

// ========================================
// 환경
// ========================================

// CreateEnvironment adds a named environment to a space
func (s *SpaceService) CreateEnvironment(actor Actor, spaceID, name string) (*domain.Environment, error) {
	if err := s.authorizer.Can(actor, spaceID, PermManageSpace); err != nil {
		return nil, err
	}
	if err := common.ValidateIdentifier(name); err != nil {
		return nil, err
	}
	if _, err := s.loadSpace(spaceID); err != nil {
		return nil, err
	}
	if _, err := s.spaceRepo.FindEnvironment(spaceID, name); err == nil {
		return nil, fmt.Errorf("이미 존재하는 환경입니다 %q: %w", name, common.ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	env := &domain.Environment{SpaceID: spaceID, Name: name}
	if err := s.spaceRepo.CreateEnvironment(env); err != nil {
		return nil, fmt.Errorf("환경 생성 실패: %w", err)
	}
	return env, nil
}

// GetEnvironment resolves an environment by name within a space
func (s *SpaceService) GetEnvironment(spaceID, name string) (*domain.Environment, error) {
	env, err := s.spaceRepo.FindEnvironment(spaceID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEnvironmentNotFound
		}
		return nil, err
	}
	return env, nil
}

// ListEnvironments lists a space's environments
func (s *SpaceService) ListEnvironments(actor Actor, spaceID string) ([]*domain.Environment, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	return s.spaceRepo.ListEnvironments(spaceID)
}

// DeleteEnvironment removes a non-master environment
func (s *SpaceService) DeleteEnvironment(actor Actor, spaceID, name string) error {
	if err := s.authorizer.Can(actor, spaceID, PermManageSpace); err != nil {
		return err
	}
	if name == domain.DefaultEnvironment {
		return fmt.Errorf("기본 환경은 삭제할 수 없습니다: %w", common.ErrInvalidInput)
	}
	if err := s.spaceRepo.DeleteEnvironment(spaceID, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrEnvironmentNotFound
		}
		return err
	}
	return nil
}

// ========================================
// 멤버십
// ========================================

// AddMember grants a user a role in the space
func (s *SpaceService) AddMember(actor Actor, spaceID string, req *domain.AddMemberRequest) (*domain.SpaceMember, error) {
	if err := s.authorizer.Can(actor, spaceID, PermManageSpace); err != nil {
		return nil, err
	}
	if _, ok := roleRank[req.Role]; !ok {
		return nil, fmt.Errorf("유효하지 않은 역할 %q: %w", req.Role, common.ErrInvalidInput)
	}
	if _, err := s.spaceRepo.FindMember(spaceID, req.UserID); err == nil {
		return nil, fmt.Errorf("이미 스페이스 멤버입니다: %w", common.ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := &domain.SpaceMember{
		SpaceID: spaceID,
		UserID:  req.UserID,
		Role:    req.Role,
	}
	if err := s.spaceRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("멤버 추가 실패: %w", err)
	}
	return member, nil
}

// ListMembers lists the space's memberships
func (s *SpaceService) ListMembers(actor Actor, spaceID string) ([]*domain.SpaceMember, error) {
	if err := s.authorizer.Can(actor, spaceID, PermRead); err != nil {
		return nil, err
	}
	return s.spaceRepo.ListMembers(spaceID)
}

// UpdateMemberRole changes a member's role. The last owner cannot be demoted.
func (s *SpaceService) UpdateMemberRole(actor Actor, spaceID string, userID uint64, role string) error {
	if err := s.authorizer.Can(actor, spaceID, PermManageSpace); err != nil {
		return err
	}
	if _, ok := roleRank[role]; !ok {
		return fmt.Errorf("유효하지 않은 역할 %q: %w", role, common.ErrInvalidInput)
	}

	member, err := s.spaceRepo.FindMember(spaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		return err
	}
	if member.Role == domain.RoleOwner && role != domain.RoleOwner {
		last, err := s.isLastOwner(spaceID, userID)
		if err != nil {
			return err
		}
		if last {
			return fmt.Errorf("마지막 소유자의 역할은 변경할 수 없습니다: %w", common.ErrInvalidInput)
		}
	}
	return s.spaceRepo.UpdateMemberRole(spaceID, userID, role)
}

// RemoveMember revokes a membership. The last owner cannot be removed.
func (s *SpaceService) RemoveMember(actor Actor, spaceID string, userID uint64) error {
	if err := s.authorizer.Can(actor, spaceID, PermManageSpace); err != nil {
		return err
	}
	member, err := s.spaceRepo.FindMember(spaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		return err
	}
	if member.Role == domain.RoleOwner {
		last, err := s.isLastOwner(spaceID, userID)
		if err != nil {
			return err
		}
		if last {
			return fmt.Errorf("마지막 소유자는 제거할 수 없습니다: %w", common.ErrInvalidInput)
		}
	}
	return s.spaceRepo.RemoveMember(spaceID, userID)
}

// ========================================
// 내부 헬퍼
// ========================================

func (s *SpaceService) loadSpace(spaceID string) (*domain.Space, error) {
	space, err := s.spaceRepo.FindByID(spaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSpaceNotFound
		}
		return nil, err
	}
	return space, nil
}

// isLastOwner reports whether userID is the only owner of the space
func (s *SpaceService) isLastOwner(spaceID string, userID uint64) (bool, error) {
	members, err := s.spaceRepo.ListMembers(spaceID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m.Role == domain.RoleOwner && m.UserID != userID {
			return false, nil
		}
	}
	return true, nil
}

func (s *SpaceService) invalidateSpace(subdomain string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSpace(context.Background(), subdomain); err != nil {
		log.Printf("[WARN] 스페이스 캐시 무효화 실패: %s: %v", subdomain, err)
	}
}
