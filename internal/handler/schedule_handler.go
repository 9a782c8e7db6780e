package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/service"
	"github.com/vellum-cms/vellum-backend/pkg/ginutil"
)

// ScheduleHandler handles scheduled publish/unpublish requests.
// Writes go through the entry service so embedded action state and the
// durable record stay in step; reads go straight to the scheduler.
type ScheduleHandler struct {
	entries   *service.EntryService
	scheduler *service.SchedulerService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(entries *service.EntryService, scheduler *service.SchedulerService) *ScheduleHandler {
	return &ScheduleHandler{entries: entries, scheduler: scheduler}
}

// Schedule godoc
// @Summary      발행/발행 해제 예약
// @Description  엔트리에 publish 또는 unpublish를 예약합니다. 엔트리당 대기 중인 예약은 하나만 허용됩니다
// @Tags         scheduled-actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string                       true  "스페이스 ID"
// @Param        env_name  path  string                       true  "환경 이름"
// @Param        id        path  int                          true  "엔트리 ID"
// @Param        request   body  domain.ScheduleActionRequest true  "예약 요청"
// @Success      201  {object}  common.Response{data=domain.ScheduledAction}
// @Failure      400  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/scheduled_actions [post]
func (h *ScheduleHandler) Schedule(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	var req domain.ScheduleActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	action, err := h.entries.Schedule(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, action)
}

// CancelSchedule godoc
// @Summary      예약 취소
// @Description  대기 중인 예약을 취소합니다. 이미 실행되었거나 취소된 예약은 되돌릴 수 없습니다
// @Tags         scheduled-actions
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/scheduled_actions [delete]
func (h *ScheduleHandler) CancelSchedule(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	entry, err := h.entries.CancelSchedule(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, entry.ToResponse())
}

// ListForEntry godoc
// @Summary      엔트리 예약 이력 조회
// @Description  완료/취소/실패를 포함한 엔트리의 모든 예약 기록을 조회합니다
// @Tags         scheduled-actions
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        id        path  int     true  "엔트리 ID"
// @Success      200  {object}  common.Response{data=[]domain.ScheduledAction}
// @Router       /spaces/{space_id}/environments/{env_name}/entries/{id}/scheduled_actions [get]
func (h *ScheduleHandler) ListForEntry(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	actions, err := h.scheduler.ListForEntry(currentActor(c), middleware.GetSpaceID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, actions)
}

// ListForSpace godoc
// @Summary      스페이스 예약 목록 조회
// @Description  스페이스의 예약을 상태로 필터링하여 조회합니다
// @Tags         scheduled-actions
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path   string  true   "스페이스 ID"
// @Param        status    query  string  false  "pending | claimed | completed | cancelled | failed"
// @Param        page      query  int     false  "페이지 번호"  default(1)
// @Param        limit     query  int     false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.Response{data=[]domain.ScheduledAction}
// @Router       /spaces/{space_id}/scheduled_actions [get]
func (h *ScheduleHandler) ListForSpace(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	actions, total, err := h.scheduler.ListForSpace(currentActor(c), middleware.GetSpaceID(c), c.Query("status"), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessWithMeta(c, actions, common.NewMeta(page, limit, total))
}

// GetAction godoc
// @Summary      예약 상세 조회
// @Tags         scheduled-actions
// @Produce      json
// @Security     BearerAuth
// @Param        space_id   path  string  true  "스페이스 ID"
// @Param        action_id  path  string  true  "예약 작업 ID (UUID)"
// @Success      200  {object}  common.Response{data=domain.ScheduledAction}
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/scheduled_actions/{action_id} [get]
func (h *ScheduleHandler) GetAction(c *gin.Context) {
	action, err := h.scheduler.GetAction(currentActor(c), middleware.GetSpaceID(c), c.Param("action_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, action)
}
