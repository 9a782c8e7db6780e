package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"github.com/vellum-cms/vellum-backend/internal/service"
	"github.com/vellum-cms/vellum-backend/pkg/ginutil"
)

// EntryHandler handles entry management requests.
// All routes are environment scoped: space and environment are resolved
// by middleware before these handlers run.
type EntryHandler struct {
	service *service.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(service *service.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

func entryResponses(entries []*domain.Entry) []*domain.EntryResponse {
	out := make([]*domain.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ToResponse())
	}
	return out
}

// Create godoc
// @Summary      엔트리 생성
// @Description  새 엔트리를 draft 상태로 생성합니다. publish=true면 생성 직후 발행합니다
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string                    true  "스페이스 ID"
// @Param        env_name  path  string                    true  "환경 이름"
// @Param        request   body  domain.CreateEntryRequest true  "엔트리 생성 요청"
// @Success      201  {object}  common.Response{data=domain.EntryResponse}
// @Failure      400  {object}  common.Response
// @Failure      403  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	var req domain.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	entry, err := h.service.Create(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, entry.ToResponse())
}

// List godoc
// @Summary      엔트리 목록 조회
// @Description  콘텐츠 타입과 상태로 필터링하여 페이지네이션 조회합니다
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id      path   string  true   "스페이스 ID"
// @Param        env_name      path   string  true   "환경 이름"
// @Param        content_type  query  string  false  "콘텐츠 타입 ID"
// @Param        status        query  string  false  "draft | published | changed | archived"
// @Param        page          query  int     false  "페이지 번호"  default(1)
// @Param        limit         query  int     false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.Response{data=[]domain.EntryResponse}
// @Router       /spaces/{space_id}/environments/{env_name}/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	filter := repository.EntryFilter{
		ContentType: c.Query("content_type"),
		Status:      c.Query("status"),
		Page:        ginutil.QueryInt(c, "page", 1),
		Limit:       ginutil.QueryInt(c, "limit", 20),
	}

	entries, total, err := h.service.List(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessWithMeta(c, entryResponses(entries), common.NewMeta(filter.Page, filter.Limit, total))
}

// Get godoc
// @Summary      엔트리 조회
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id} [get]
func (h *EntryHandler) Get(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	entry, err := h.service.Get(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, entry.ToResponse())
}

// Update godoc
// @Summary      엔트리 수정
// @Description  필드를 교체하고 버전을 올립니다. published 상태면 changed로 전환됩니다
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string                    true  "스페이스 ID"
// @Param        env_name  path  string                    true  "환경 이름"
// @Param        id        path  int                       true  "엔트리 ID"
// @Param        request   body  domain.UpdateEntryRequest true  "필드 수정 요청"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      400  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id} [patch]
func (h *EntryHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	var req domain.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	entry, err := h.service.Update(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, entry.ToResponse())
}

// Delete godoc
// @Summary      엔트리 삭제
// @Description  엔트리와 스냅샷, 예약 레코드를 모두 삭제합니다. 상태와 무관하게 즉시 삭제됩니다
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      204  "No Content"
// @Failure      403  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id} [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	if err := h.service.Delete(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}

	common.NoContentResponse(c)
}

// ========================================
// Lifecycle Transitions
// ========================================

// Publish godoc
// @Summary      엔트리 발행
// @Description  현재 버전의 불변 스냅샷을 만들고 published 상태로 전환합니다
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/published [put]
func (h *EntryHandler) Publish(c *gin.Context) {
	h.transition(c, h.service.Publish)
}

// Unpublish godoc
// @Summary      엔트리 발행 해제
// @Description  전송 API에서 내리고 draft 상태로 되돌립니다
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/published [delete]
func (h *EntryHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.service.Unpublish)
}

// Archive godoc
// @Summary      엔트리 보관
// @Description  엔트리를 archived 상태로 전환합니다. 발행 중이던 엔트리는 전시에서 내려가고 대기 중인 예약은 취소됩니다
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/archived [put]
func (h *EntryHandler) Archive(c *gin.Context) {
	h.transition(c, h.service.Archive)
}

// Restore godoc
// @Summary      엔트리 보관 해제
// @Description  archived 엔트리를 draft 상태로 되돌립니다
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/archived [delete]
func (h *EntryHandler) Restore(c *gin.Context) {
	h.transition(c, h.service.Restore)
}

// transition runs one of the four lifecycle operations sharing the same shape
func (h *EntryHandler) transition(c *gin.Context, op func(service.Actor, string, uint64, uint64) (*domain.Entry, error)) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	entry, err := op(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, entry.ToResponse())
}

// ========================================
// Snapshots
// ========================================

// ListSnapshots godoc
// @Summary      발행 스냅샷 목록 조회
// @Description  발행 시점마다 기록된 불변 스냅샷을 최신순으로 조회합니다
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path   string  true   "스페이스 ID"
// @Param        env_name  path   string  true   "환경 이름"
// @Param        id        path   int     true   "엔트리 ID"
// @Param        page      query  int     false  "페이지 번호"  default(1)
// @Param        limit     query  int     false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.Response{data=[]domain.EntrySnapshot}
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/snapshots [get]
func (h *EntryHandler) ListSnapshots(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	snapshots, total, err := h.service.ListSnapshots(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessWithMeta(c, snapshots, common.NewMeta(page, limit, total))
}

// RestoreFromSnapshot godoc
// @Summary      스냅샷에서 복원
// @Description  과거 발행 시점의 필드를 현재 draft로 복사합니다. 새 버전이 만들어지며 스냅샷 자체는 변하지 않습니다
// @Tags         snapshots
// @Produce      json
// @Security     BearerAuth
// @Param        space_id     path  string  true  "스페이스 ID"
// @Param        env_name     path  string  true  "환경 이름"
// @Param        id           path  int     true  "엔트리 ID"
// @Param        snapshot_id  path  int     true  "스냅샷 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/snapshots/{snapshot_id}/restore [post]
func (h *EntryHandler) RestoreFromSnapshot(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	snapshotID, err := ginutil.ParamUint64(c, "snapshot_id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 스냅샷 ID", err)
		return
	}

	entry, err := h.service.RestoreFromSnapshot(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id, snapshotID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, entry.ToResponse())
}
