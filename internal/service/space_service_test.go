package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/repository"
)

func newSpaceService(e *testEngine) *SpaceService {
	spaceRepo := repository.NewSpaceRepository(e.db)
	return NewSpaceService(spaceRepo, NewDBAuthorizer(spaceRepo))
}

func TestSpaceService_CreateSpaceProvisionsTenant(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	creator := Actor{UserID: 42, Role: domain.PlatformRoleUser}
	space, err := svc.CreateSpace(creator, &domain.CreateSpaceRequest{
		Name:      "Acme Blog",
		Subdomain: "  Acme  ", // 공백/대문자는 정규화된다
	})
	require.NoError(t, err)

	assert.NotEmpty(t, space.ID)
	assert.Equal(t, "acme", space.Subdomain)
	assert.Equal(t, domain.PlanFree, space.Plan)
	assert.Equal(t, "en-US", space.DefaultLocale)

	// 기본 환경과 소유자 멤버십이 함께 만들어진다
	env, err := svc.GetEnvironment(space.ID, domain.DefaultEnvironment)
	require.NoError(t, err)
	assert.Equal(t, space.ID, env.SpaceID)

	members, err := svc.ListMembers(creator, space.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, creator.UserID, members[0].UserID)
	assert.Equal(t, domain.RoleOwner, members[0].Role)
}

func TestSpaceService_CreateSpaceValidation(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)
	creator := Actor{UserID: 42, Role: domain.PlatformRoleUser}

	// setupEngine이 "test" 서브도메인을 선점하고 있다
	_, err := svc.CreateSpace(creator, &domain.CreateSpaceRequest{Name: "Dup", Subdomain: "TEST"})
	assert.ErrorIs(t, err, common.ErrSubdomainTaken)

	_, err = svc.CreateSpace(creator, &domain.CreateSpaceRequest{Name: "Reserved", Subdomain: "www"})
	assert.ErrorIs(t, err, common.ErrReservedSubdomain)

	_, err = svc.CreateSpace(creator, &domain.CreateSpaceRequest{Name: "Bad", Subdomain: "-bad-"})
	assert.ErrorIs(t, err, common.ErrInvalidSubdomain)

	_, err = svc.CreateSpace(creator, &domain.CreateSpaceRequest{Name: "Bad Plan", Subdomain: "badplan", Plan: "gold"})
	assert.Error(t, err)

	_, err = svc.CreateSpace(creator, &domain.CreateSpaceRequest{Name: "Bad Locale", Subdomain: "badlocale", DefaultLocale: "english"})
	assert.ErrorIs(t, err, common.ErrInvalidLocale)
}

func TestSpaceService_GetSpaceBySubdomain(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	space, err := svc.GetSpaceBySubdomain(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, testSpace, space.ID)

	_, err = svc.GetSpaceBySubdomain(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, common.ErrSpaceNotFound)
}

func TestSpaceService_ListSpacesAdminOnly(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	_, _, err := svc.ListSpaces(ownerActor, "", 1, 20)
	assert.ErrorIs(t, err, common.ErrForbidden)

	admin := Actor{UserID: 500, Role: domain.PlatformRoleAdmin}
	spaces, total, err := svc.ListSpaces(admin, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, spaces, 1)
	assert.Equal(t, testSpace, spaces[0].ID)
}

func TestSpaceService_UpdateSpace(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	name := "Renamed"
	plan := domain.PlanTeam
	updated, err := svc.UpdateSpace(ownerActor, testSpace, &domain.UpdateSpaceRequest{
		Name: &name,
		Plan: &plan,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, domain.PlanTeam, updated.Plan)

	badPlan := "gold"
	_, err = svc.UpdateSpace(ownerActor, testSpace, &domain.UpdateSpaceRequest{Plan: &badPlan})
	assert.Error(t, err)

	// 편집자는 스페이스 설정을 바꿀 수 없다
	_, err = svc.UpdateSpace(editorActor, testSpace, &domain.UpdateSpaceRequest{Name: &name})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestSpaceService_SetSuspended(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	// 스페이스 소유자라도 플랫폼 관리자가 아니면 정지시킬 수 없다
	err := svc.SetSuspended(ownerActor, testSpace, true)
	assert.ErrorIs(t, err, common.ErrForbidden)

	admin := Actor{UserID: 500, Role: domain.PlatformRoleAdmin}
	require.NoError(t, svc.SetSuspended(admin, testSpace, true))

	space, err := svc.GetSpace(ownerActor, testSpace)
	require.NoError(t, err)
	assert.True(t, space.Suspended)
	assert.NotNil(t, space.SuspendedAt)

	require.NoError(t, svc.SetSuspended(admin, testSpace, false))
	space, err = svc.GetSpace(ownerActor, testSpace)
	require.NoError(t, err)
	assert.False(t, space.Suspended)
}

func TestSpaceService_Environments(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	env, err := svc.CreateEnvironment(ownerActor, testSpace, "staging")
	require.NoError(t, err)
	assert.NotZero(t, env.ID)

	_, err = svc.CreateEnvironment(ownerActor, testSpace, "staging")
	assert.ErrorContains(t, err, "이미 존재하는 환경입니다")

	_, err = svc.CreateEnvironment(ownerActor, testSpace, "bad-name")
	assert.ErrorIs(t, err, common.ErrInvalidIdentifier)

	// 편집자는 환경을 만들 수 없다
	_, err = svc.CreateEnvironment(editorActor, testSpace, "dev")
	assert.ErrorIs(t, err, common.ErrForbidden)

	envs, err := svc.ListEnvironments(viewerActor, testSpace)
	require.NoError(t, err)
	assert.Len(t, envs, 2) // master + staging

	require.NoError(t, svc.DeleteEnvironment(ownerActor, testSpace, "staging"))

	err = svc.DeleteEnvironment(ownerActor, testSpace, domain.DefaultEnvironment)
	assert.ErrorContains(t, err, "기본 환경")

	err = svc.DeleteEnvironment(ownerActor, testSpace, "ghost")
	assert.ErrorIs(t, err, common.ErrEnvironmentNotFound)
}

func TestSpaceService_Members(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	member, err := svc.AddMember(ownerActor, testSpace, &domain.AddMemberRequest{UserID: 7, Role: domain.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, member.Role)

	_, err = svc.AddMember(ownerActor, testSpace, &domain.AddMemberRequest{UserID: 7, Role: domain.RoleViewer})
	assert.ErrorContains(t, err, "이미 스페이스 멤버")

	_, err = svc.AddMember(ownerActor, testSpace, &domain.AddMemberRequest{UserID: 8, Role: "superuser"})
	assert.ErrorContains(t, err, "유효하지 않은 역할")

	require.NoError(t, svc.UpdateMemberRole(ownerActor, testSpace, 7, domain.RoleAdmin))

	members, err := svc.ListMembers(ownerActor, testSpace)
	require.NoError(t, err)
	assert.Len(t, members, 4) // 1,2,3 + 7

	require.NoError(t, svc.RemoveMember(ownerActor, testSpace, 7))

	err = svc.RemoveMember(ownerActor, testSpace, 7)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// 편집자는 멤버십을 관리할 수 없다
	_, err = svc.AddMember(editorActor, testSpace, &domain.AddMemberRequest{UserID: 9, Role: domain.RoleViewer})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestSpaceService_LastOwnerGuards(t *testing.T) {
	e := setupEngine(t)
	svc := newSpaceService(e)

	// 유일한 소유자는 강등도 제거도 안 된다
	err := svc.UpdateMemberRole(ownerActor, testSpace, ownerActor.UserID, domain.RoleEditor)
	assert.ErrorContains(t, err, "마지막 소유자")

	err = svc.RemoveMember(ownerActor, testSpace, ownerActor.UserID)
	assert.ErrorContains(t, err, "마지막 소유자")

	// 소유자가 한 명 더 생기면 기존 소유자를 강등할 수 있다
	_, err = svc.AddMember(ownerActor, testSpace, &domain.AddMemberRequest{UserID: 7, Role: domain.RoleOwner})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateMemberRole(ownerActor, testSpace, ownerActor.UserID, domain.RoleEditor))
}
