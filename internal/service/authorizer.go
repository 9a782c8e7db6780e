package service

import (
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/repository"
)

// Actor identifies who is performing an operation. The scheduler sweep runs
// with the system actor, which skips membership checks entirely.
type Actor struct {
	UserID uint64
	Role   string // platform role (admin|user)
	System bool
}

// SystemActor is used by background processes re-entering the entry service.
var SystemActor = Actor{System: true}

// Permission names a class of space operations gated by member role.
type Permission string

const (
	PermRead        Permission = "content.read"   // entries incl. drafts, snapshots, schedules
	PermWrite       Permission = "content.write"  // create/save and lifecycle transitions
	PermSchedule    Permission = "schedule.write" // register/cancel deferred transitions
	PermDelete      Permission = "content.delete" // physical entry deletion
	PermManageTypes Permission = "types.manage"   // content type registry changes
	PermManageSpace Permission = "space.manage"   // settings, members
	PermOwnSpace    Permission = "space.own"      // plan change, space deletion
)

// Role ranks: viewer < editor < admin < owner. A permission is granted when
// the member's rank reaches the permission's minimum rank; unknown roles rank
// 0 and are always denied.
var roleRank = map[string]int{
	domain.RoleViewer: 1,
	domain.RoleEditor: 2,
	domain.RoleAdmin:  3,
	domain.RoleOwner:  4,
}

var permissionRank = map[Permission]int{
	PermRead:        1,
	PermWrite:       2,
	PermSchedule:    2,
	PermDelete:      3,
	PermManageTypes: 3,
	PermManageSpace: 3,
	PermOwnSpace:    4,
}

// Authorizer is the boolean gate consulted before every mutating operation
// and before reads that expose draft content. Implementations must fail
// closed: any lookup problem denies.
type Authorizer interface {
	Can(actor Actor, spaceID string, perm Permission) error
}

type dbAuthorizer struct {
	spaceRepo repository.SpaceRepository
}

// NewDBAuthorizer builds an Authorizer over the space membership table.
func NewDBAuthorizer(spaceRepo repository.SpaceRepository) Authorizer {
	return &dbAuthorizer{spaceRepo: spaceRepo}
}

// Can grants system and platform-admin actors unconditionally, then checks
// the actor's space membership role against the permission's minimum rank.
// Missing membership or a failed lookup both deny.
func (a *dbAuthorizer) Can(actor Actor, spaceID string, perm Permission) error {
	if actor.System {
		return nil
	}
	if actor.Role == domain.PlatformRoleAdmin {
		return nil
	}

	member, err := a.spaceRepo.FindMember(spaceID, actor.UserID)
	if err != nil {
		// 멤버 아님 또는 조회 실패 → 무조건 거부 (fail closed)
		return common.ErrForbidden
	}

	need, ok := permissionRank[perm]
	if !ok {
		return common.ErrForbidden
	}
	if roleRank[member.Role] < need {
		return common.ErrForbidden
	}
	return nil
}
