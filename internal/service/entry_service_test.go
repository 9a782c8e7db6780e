package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/hook"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSpace = "sp-test"

// Seeded members: 1=owner, 2=editor, 3=viewer. 99 is not a member.
var (
	ownerActor    = Actor{UserID: 1, Role: domain.PlatformRoleUser}
	editorActor   = Actor{UserID: 2, Role: domain.PlatformRoleUser}
	viewerActor   = Actor{UserID: 3, Role: domain.PlatformRoleUser}
	strangerActor = Actor{UserID: 99, Role: domain.PlatformRoleUser}
)

// hookTestLogger is a no-op logger for the hook manager
type hookTestLogger struct{}

func (l *hookTestLogger) Debug(_ string, _ ...interface{}) {}
func (l *hookTestLogger) Info(_ string, _ ...interface{})  {}
func (l *hookTestLogger) Warn(_ string, _ ...interface{})  {}
func (l *hookTestLogger) Error(_ string, _ ...interface{}) {}

// testEngine wires the full lifecycle engine against an in-memory database:
// real repositories, DB-backed authorizer, and the entry façade cross-wired
// with the scheduler the same way main does it.
type testEngine struct {
	db        *gorm.DB
	entries   *EntryService
	scheduler *SchedulerService
	actions   repository.ScheduledActionRepository
	snapshots repository.SnapshotRepository
	envID     uint64
}

func setupEngine(t *testing.T) *testEngine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Entry{},
		&domain.EntrySnapshot{},
		&domain.ScheduledAction{},
		&domain.ContentType{},
		&domain.Space{},
		&domain.Environment{},
		&domain.SpaceMember{},
		&domain.User{},
	))

	require.NoError(t, db.Create(&domain.Space{
		ID:            testSpace,
		Name:          "Test Space",
		Subdomain:     "test",
		Plan:          domain.PlanFree,
		DefaultLocale: "en-US",
	}).Error)

	env := &domain.Environment{SpaceID: testSpace, Name: domain.DefaultEnvironment}
	require.NoError(t, db.Create(env).Error)

	require.NoError(t, db.Create(&domain.ContentType{
		SpaceID:       testSpace,
		EnvironmentID: env.ID,
		TypeID:        "blogPost",
		Name:          "Blog Post",
		DisplayField:  "title",
		Fields: domain.FieldDefinitions{
			{ID: "title", Type: "text", Localized: true},
			{ID: "slug", Type: "symbol", Localized: false},
		},
	}).Error)

	for _, m := range []domain.SpaceMember{
		{SpaceID: testSpace, UserID: 1, Role: domain.RoleOwner},
		{SpaceID: testSpace, UserID: 2, Role: domain.RoleEditor},
		{SpaceID: testSpace, UserID: 3, Role: domain.RoleViewer},
	} {
		member := m
		require.NoError(t, db.Create(&member).Error)
	}

	entryRepo := repository.NewEntryRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	actionRepo := repository.NewScheduledActionRepository(db)
	ctypeRepo := repository.NewContentTypeRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	authorizer := NewDBAuthorizer(spaceRepo)

	entries := NewEntryService(entryRepo, snapshotRepo, actionRepo, ctypeRepo, spaceRepo, authorizer)
	scheduler := NewSchedulerService(actionRepo, entryRepo, authorizer, 10, 50)
	scheduler.SetExecutor(entries)
	entries.SetScheduler(scheduler)

	return &testEngine{
		db:        db,
		entries:   entries,
		scheduler: scheduler,
		actions:   actionRepo,
		snapshots: snapshotRepo,
		envID:     env.ID,
	}
}

func (e *testEngine) createDraft(t *testing.T) *domain.Entry {
	t.Helper()
	entry, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Hello"}},
	})
	require.NoError(t, err)
	return entry
}

func (e *testEngine) reload(t *testing.T, id uint64) *domain.Entry {
	t.Helper()
	entry, err := e.entries.Get(ownerActor, testSpace, e.envID, id)
	require.NoError(t, err)
	return entry
}

func (e *testEngine) countSnapshots(t *testing.T, entryID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&domain.EntrySnapshot{}).Where("entry_id = ?", entryID).Count(&n).Error)
	return n
}

// ========================================
// 작성/수정
// ========================================

func TestEntryService_CreateDraft(t *testing.T) {
	e := setupEngine(t)

	entry := e.createDraft(t)

	assert.Equal(t, domain.StatusDraft, entry.Status)
	assert.Equal(t, uint(1), entry.Version)
	assert.Nil(t, entry.PublishedVersion)
	assert.Nil(t, entry.FirstPublishedAt)
	assert.Equal(t, editorActor.UserID, entry.CreatedBy)
	assert.Equal(t, int64(0), e.countSnapshots(t, entry.ID))
}

func TestEntryService_CreateWithPublish(t *testing.T) {
	e := setupEngine(t)

	entry, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Launch"}},
		Publish:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPublished, entry.Status)
	assert.Equal(t, uint(1), entry.Version)
	require.NotNil(t, entry.PublishedVersion)
	assert.Equal(t, uint(1), *entry.PublishedVersion)
	assert.NotNil(t, entry.FirstPublishedAt)
	assert.NotNil(t, entry.PublishedAt)

	// 생성과 동시에 발행 → 스냅샷 v1 하나
	require.Equal(t, int64(1), e.countSnapshots(t, entry.ID))
	snap, err := e.snapshots.FindByEntryAndVersion(entry.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Launch", snap.Fields["title"]["en-US"])
}

func TestEntryService_Create_UnknownContentType(t *testing.T) {
	e := setupEngine(t)

	_, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "missingType",
		Fields:      domain.FieldMap{"title": {"en-US": "x"}},
	})
	require.ErrorIs(t, err, common.ErrContentTypeNotFound)
}

func TestEntryService_Update_MergesAndBumpsVersion(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	updated, err := e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"ko": "안녕하세요"}},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.Version)
	assert.Equal(t, domain.StatusDraft, updated.Status)
	// 로케일 병합: 보낸 로케일만 바뀌고 나머지는 유지
	assert.Equal(t, "안녕하세요", updated.Fields["title"]["ko"])
	assert.Equal(t, "Hello", updated.Fields["title"]["en-US"])

	reloaded := e.reload(t, entry.ID)
	assert.Equal(t, uint(2), reloaded.Version)
	assert.Equal(t, "안녕하세요", reloaded.Fields["title"]["ko"])
}

func TestEntryService_Update_PublishedDiverges(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	_, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	updated, err := e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Edited"}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusChanged, updated.Status)
	assert.Equal(t, uint(2), updated.Version)
	require.NotNil(t, updated.PublishedVersion)
	assert.Equal(t, uint(1), *updated.PublishedVersion)
	assert.True(t, updated.HasPendingChanges())
}

func TestEntryService_Update_ArchivedStaysArchived(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	_, err := e.entries.Archive(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	// 보관된 엔트리도 편집은 허용 — 상태는 archived 그대로
	updated, err := e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Still shelved"}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, updated.Status)
	assert.Equal(t, uint(2), updated.Version)
}

// ========================================
// 상태 전이
// ========================================

func TestEntryService_Publish_OneSnapshotPerVersion(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	published, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, published.Status)
	assert.Equal(t, uint(1), published.Version)
	require.NotNil(t, published.PublishedVersion)
	assert.Equal(t, uint(1), *published.PublishedVersion)
	assert.Equal(t, int64(1), e.countSnapshots(t, entry.ID))

	// 같은 버전 재발행은 no-op: 스냅샷이 늘지 않는다
	again, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, again.Status)
	assert.Equal(t, int64(1), e.countSnapshots(t, entry.ID))

	// 편집 후 발행하면 새 버전의 스냅샷이 추가된다
	_, err = e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "v2"}},
	})
	require.NoError(t, err)
	republished, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *republished.PublishedVersion)
	assert.Equal(t, int64(2), e.countSnapshots(t, entry.ID))
}

func TestEntryService_Publish_ArchivedRejected(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	_, err := e.entries.Archive(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	_, err = e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.ErrorIs(t, err, common.ErrInvalidTransition)
}

func TestEntryService_Unpublish_KeepsPublishHistory(t *testing.T) {
	e := setupEngine(t)
	entry, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Hello"}},
		Publish:     true,
	})
	require.NoError(t, err)

	unpublished, err := e.entries.Unpublish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, unpublished.Status)
	// 발행 이력은 지워지지 않는다
	require.NotNil(t, unpublished.PublishedVersion)
	assert.Equal(t, uint(1), *unpublished.PublishedVersion)
	assert.NotNil(t, unpublished.FirstPublishedAt)
	assert.Equal(t, int64(1), e.countSnapshots(t, entry.ID))

	// draft 상태에서 비공개는 no-op
	again, err := e.entries.Unpublish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, again.Status)

	// archived 상태에서는 거부
	_, err = e.entries.Archive(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	_, err = e.entries.Unpublish(editorActor, testSpace, e.envID, entry.ID)
	require.ErrorIs(t, err, common.ErrInvalidTransition)
}

func TestEntryService_Archive_CancelsPendingSchedule(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	action, err := e.entries.Schedule(editorActor, testSpace, e.envID, entry.ID, &domain.ScheduleActionRequest{
		Action:       domain.ActionPublish,
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	archived, err := e.entries.Archive(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, archived.Status)
	assert.NotNil(t, archived.ArchivedAt)

	// 임베디드 포인터와 내구 레코드 둘 다 취소된다
	reloaded := e.reload(t, entry.ID)
	info, err := reloaded.PendingAction()
	require.NoError(t, err)
	assert.Nil(t, info)

	record, err := e.actions.FindByActionID(action.ActionID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleStatusCancelled, record.Status)

	// 취소된 예약은 스윕이 건드리지 않는다
	executed, failed, err := e.scheduler.Sweep(context.Background(), time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, executed)
	assert.Zero(t, failed)
	assert.Equal(t, domain.StatusArchived, e.reload(t, entry.ID).Status)
}

func TestEntryService_Restore(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	// archived가 아니면 복원 불가
	_, err := e.entries.Restore(editorActor, testSpace, e.envID, entry.ID)
	require.ErrorIs(t, err, common.ErrInvalidTransition)

	_, err = e.entries.Archive(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	restored, err := e.entries.Restore(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, restored.Status)
	assert.Nil(t, restored.ArchivedAt)
}

func TestEntryService_FirstPublishedAtSurvivesRepublish(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	_, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	first := e.reload(t, entry.ID).FirstPublishedAt
	require.NotNil(t, first)

	_, err = e.entries.Unpublish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	_, err = e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "again"}},
	})
	require.NoError(t, err)
	_, err = e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	second := e.reload(t, entry.ID).FirstPublishedAt
	require.NotNil(t, second)
	assert.True(t, second.Equal(*first), "first_published_at must not move on republish")
}

func TestEntryService_VersionConflictMapped(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	// 낡은 버전 가드로 CAS를 치면 충돌 에러로 매핑된다
	err := e.entries.casUpdate(entry.ID, entry.Version+1, map[string]interface{}{
		"status": string(domain.StatusDraft),
	})
	require.ErrorIs(t, err, common.ErrConcurrentModification)

	reloaded := e.reload(t, entry.ID)
	assert.Equal(t, uint(1), reloaded.Version)
}

// ========================================
// 권한
// ========================================

func TestEntryService_Authorization(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	// 멤버가 아니면 무조건 거부
	_, err := e.entries.Create(strangerActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "x"}},
	})
	require.ErrorIs(t, err, common.ErrForbidden)

	// viewer는 읽기만
	_, err = e.entries.Get(viewerActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	_, _, err = e.entries.List(viewerActor, testSpace, e.envID, repository.EntryFilter{})
	require.NoError(t, err)
	_, err = e.entries.Update(viewerActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "nope"}},
	})
	require.ErrorIs(t, err, common.ErrForbidden)
	_, err = e.entries.Schedule(viewerActor, testSpace, e.envID, entry.ID, &domain.ScheduleActionRequest{
		Action:       domain.ActionPublish,
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, common.ErrForbidden)

	// editor는 삭제 권한이 없다
	err = e.entries.Delete(editorActor, testSpace, e.envID, entry.ID)
	require.ErrorIs(t, err, common.ErrForbidden)

	// 플랫폼 관리자는 멤버십 없이 통과
	admin := Actor{UserID: 500, Role: domain.PlatformRoleAdmin}
	_, err = e.entries.Get(admin, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
}

// ========================================
// 삭제
// ========================================

func TestEntryService_Delete_RemovesChildren(t *testing.T) {
	e := setupEngine(t)
	entry, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Hello"}},
		Publish:     true,
	})
	require.NoError(t, err)

	_, err = e.entries.Schedule(editorActor, testSpace, e.envID, entry.ID, &domain.ScheduleActionRequest{
		Action:       domain.ActionUnpublish,
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, e.entries.Delete(ownerActor, testSpace, e.envID, entry.ID))

	_, err = e.entries.Get(ownerActor, testSpace, e.envID, entry.ID)
	require.ErrorIs(t, err, common.ErrEntryNotFound)
	assert.Equal(t, int64(0), e.countSnapshots(t, entry.ID))

	var actionCount int64
	require.NoError(t, e.db.Model(&domain.ScheduledAction{}).Where("entry_id = ?", entry.ID).Count(&actionCount).Error)
	assert.Equal(t, int64(0), actionCount)
}

// ========================================
// 버전 원장
// ========================================

func TestEntryService_ListSnapshots_NewestFirst(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t)

	_, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	_, err = e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "v2"}},
	})
	require.NoError(t, err)
	_, err = e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	snaps, total, err := e.entries.ListSnapshots(viewerActor, testSpace, e.envID, entry.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, snaps, 2)
	assert.Equal(t, uint(2), snaps[0].Version)
	assert.Equal(t, uint(1), snaps[1].Version)
}

func TestEntryService_RestoreFromSnapshot(t *testing.T) {
	e := setupEngine(t)
	entry := e.createDraft(t) // title: Hello

	_, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	_, err = e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Second"}},
	})
	require.NoError(t, err)
	_, err = e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)

	firstSnap, err := e.snapshots.FindByEntryAndVersion(entry.ID, 1)
	require.NoError(t, err)

	// 복원은 앞으로 감기: 버전이 줄지 않고 올라간다
	restored, err := e.entries.RestoreFromSnapshot(editorActor, testSpace, e.envID, entry.ID, firstSnap.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), restored.Version)
	assert.Equal(t, "Hello", restored.Fields["title"]["en-US"])
	assert.Equal(t, domain.StatusChanged, restored.Status)
	require.NotNil(t, restored.PublishedVersion)
	assert.Equal(t, uint(2), *restored.PublishedVersion)

	// 다른 엔트리의 스냅샷은 보이지 않아야 한다
	other := e.createDraft(t)
	_, err = e.entries.RestoreFromSnapshot(editorActor, testSpace, e.envID, other.ID, firstSnap.ID)
	require.ErrorIs(t, err, common.ErrSnapshotNotFound)

	_, err = e.entries.RestoreFromSnapshot(editorActor, testSpace, e.envID, entry.ID, 9999)
	require.ErrorIs(t, err, common.ErrSnapshotNotFound)
}

// ========================================
// 공개 전달
// ========================================

func TestEntryService_GetPublished_ServesSnapshotForChanged(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()

	entry, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Public copy"}},
		Publish:     true,
	})
	require.NoError(t, err)

	resp, err := e.entries.GetPublished(ctx, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, resp.Status)
	assert.Equal(t, uint(1), resp.Version)
	assert.Equal(t, "Public copy", resp.Fields["title"]["en-US"])

	// 편집하면 관리 화면은 바뀐 내용을, 공개 API는 스냅샷을 계속 보여준다
	_, err = e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Work in progress"}},
	})
	require.NoError(t, err)

	management := e.reload(t, entry.ID)
	assert.Equal(t, domain.StatusChanged, management.Status)
	assert.Equal(t, "Work in progress", management.Fields["title"]["en-US"])

	resp, err = e.entries.GetPublished(ctx, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, resp.Status)
	assert.Equal(t, uint(1), resp.Version)
	assert.Equal(t, "Public copy", resp.Fields["title"]["en-US"])
}

func TestEntryService_GetPublished_HidesScheduleAndDrafts(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()

	draft := e.createDraft(t)
	_, err := e.entries.GetPublished(ctx, testSpace, e.envID, draft.ID)
	require.ErrorIs(t, err, common.ErrEntryNotFound)

	published, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Visible"}},
		Publish:     true,
	})
	require.NoError(t, err)
	_, err = e.entries.Schedule(editorActor, testSpace, e.envID, published.ID, &domain.ScheduleActionRequest{
		Action:       domain.ActionUnpublish,
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// 예약 정보는 관리 API에만 보인다
	managed := e.reload(t, published.ID)
	info, err := managed.PendingAction()
	require.NoError(t, err)
	require.NotNil(t, info)

	resp, err := e.entries.GetPublished(ctx, testSpace, e.envID, published.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.ScheduledAction)

	// 공개를 내리면 공개 API에서 사라진다
	_, err = e.entries.Unpublish(editorActor, testSpace, e.envID, published.ID)
	require.NoError(t, err)
	_, err = e.entries.GetPublished(ctx, testSpace, e.envID, published.ID)
	require.ErrorIs(t, err, common.ErrEntryNotFound)
}

func TestEntryService_ListPublished(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()

	e.createDraft(t) // draft — 보이면 안 됨

	_, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Live"}},
		Publish:     true,
	})
	require.NoError(t, err)

	changed, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Frozen"}},
		Publish:     true,
	})
	require.NoError(t, err)
	_, err = e.entries.Update(editorActor, testSpace, e.envID, changed.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Thawing"}},
	})
	require.NoError(t, err)

	archived := e.createDraft(t)
	_, err = e.entries.Archive(editorActor, testSpace, e.envID, archived.ID)
	require.NoError(t, err)

	responses, total, err := e.entries.ListPublished(ctx, testSpace, e.envID, repository.EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
	for _, resp := range responses {
		assert.Equal(t, domain.StatusPublished, resp.Status)
	}

	// changed 엔트리는 스냅샷 내용으로 전달된다
	titles := map[string]bool{}
	for _, resp := range responses {
		titles[resp.Fields["title"]["en-US"].(string)] = true
	}
	assert.True(t, titles["Live"])
	assert.True(t, titles["Frozen"], "in-progress edits must stay invisible")
}

// ========================================
// 훅
// ========================================

func TestEntryService_BeforeSaveFilterRewritesFields(t *testing.T) {
	e := setupEngine(t)

	hooks := hook.NewHookManager(&hookTestLogger{})
	hooks.RegisterFilter(hook.HookEntryBeforeSave, "normalizer", func(ctx *hook.HookContext) error {
		fields, ok := ctx.Input["fields"].(domain.FieldMap)
		if !ok {
			return nil
		}
		out := fields.Clone()
		out["slug"] = map[string]interface{}{"en-US": "normalized-slug"}
		ctx.SetOutput(map[string]interface{}{
			"space_id":     ctx.Input["space_id"],
			"content_type": ctx.Input["content_type"],
			"fields":       out,
		})
		return nil
	}, 10)
	e.entries.SetHooks(hooks, nil)

	entry, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Hook me"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "normalized-slug", entry.Fields["slug"]["en-US"])
	assert.Equal(t, "Hook me", entry.Fields["title"]["en-US"])
}

func TestEntryService_AfterPublishHookFires(t *testing.T) {
	e := setupEngine(t)

	var fired []string
	hooks := hook.NewHookManager(&hookTestLogger{})
	for _, event := range []string{hook.HookEntryAfterCreate, hook.HookEntryAfterPublish} {
		ev := event
		hooks.Register(ev, "recorder", func(ctx *hook.HookContext) error {
			fired = append(fired, ev)
			return nil
		}, 10)
	}
	e.entries.SetHooks(hooks, nil)

	_, err := e.entries.Create(editorActor, testSpace, e.envID, &domain.CreateEntryRequest{
		ContentType: "blogPost",
		Fields:      domain.FieldMap{"title": {"en-US": "Notify"}},
		Publish:     true,
	})
	require.NoError(t, err)
	assert.Contains(t, fired, hook.HookEntryAfterCreate)
	assert.Contains(t, fired, hook.HookEntryAfterPublish)
}

// ========================================
// 전체 시나리오
// ========================================

func TestEntryLifecycleScenario(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()

	// 초안 작성과 편집
	entry := e.createDraft(t)
	_, err := e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Ready"}, "slug": {"en-US": "ready"}},
	})
	require.NoError(t, err)

	// 발행: v2가 공개 버전이 된다
	published, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *published.PublishedVersion)

	// 발행 후 편집: 공개본은 그대로, 관리본만 앞서간다
	_, err = e.entries.Update(editorActor, testSpace, e.envID, entry.ID, &domain.UpdateEntryRequest{
		Fields: domain.FieldMap{"title": {"en-US": "Next draft"}},
	})
	require.NoError(t, err)
	resp, err := e.entries.GetPublished(ctx, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ready", resp.Fields["title"]["en-US"])
	assert.Equal(t, uint(2), resp.Version)

	// 비공개 예약 → 스윕 실행 → draft로 내려간다
	_, err = e.entries.Schedule(editorActor, testSpace, e.envID, entry.ID, &domain.ScheduleActionRequest{
		Action:       domain.ActionUnpublish,
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	executed, failed, err := e.scheduler.Sweep(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, executed)
	assert.Zero(t, failed)

	afterSweep := e.reload(t, entry.ID)
	assert.Equal(t, domain.StatusDraft, afterSweep.Status)
	assert.Equal(t, uint(2), *afterSweep.PublishedVersion)
	info, err := afterSweep.PendingAction()
	require.NoError(t, err)
	assert.Nil(t, info)

	// 보관 후 스윕은 아무것도 하지 않는다
	_, err = e.entries.Archive(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	executed, failed, err = e.scheduler.Sweep(ctx, time.Now().Add(3*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, executed)
	assert.Zero(t, failed)

	// 복원 후 재발행: 버전 원장은 계속 쌓인다
	_, err = e.entries.Restore(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	final, err := e.entries.Publish(editorActor, testSpace, e.envID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), *final.PublishedVersion)
	assert.Equal(t, int64(2), e.countSnapshots(t, entry.ID))
}
