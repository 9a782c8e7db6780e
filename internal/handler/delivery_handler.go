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

// DeliveryHandler serves the public read-only API. The tenant space is
// resolved from the request subdomain by middleware; only published
// snapshot content ever leaves these endpoints.
type DeliveryHandler struct {
	entries *service.EntryService
	ctypes  *service.ContentTypeService
	spaces  *service.SpaceService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(entries *service.EntryService, ctypes *service.ContentTypeService, spaces *service.SpaceService) *DeliveryHandler {
	return &DeliveryHandler{entries: entries, ctypes: ctypes, spaces: spaces}
}

// resolveEnvironment maps the ?environment= query to an environment ID,
// defaulting to master
func (h *DeliveryHandler) resolveEnvironment(c *gin.Context) (uint64, bool) {
	name := c.DefaultQuery("environment", domain.DefaultEnvironment)
	env, err := h.spaces.GetEnvironment(middleware.GetSpaceID(c), name)
	if err != nil {
		handleServiceError(c, err)
		return 0, false
	}
	return env.ID, true
}

// ListEntries godoc
// @Summary      발행 엔트리 목록 조회 (전송 API)
// @Description  서브도메인으로 식별된 스페이스의 발행 스냅샷 목록을 조회합니다. 인증이 필요 없습니다
// @Tags         delivery
// @Produce      json
// @Param        environment   query  string  false  "환경 이름"  default(master)
// @Param        content_type  query  string  false  "콘텐츠 타입 ID"
// @Param        page          query  int     false  "페이지 번호"  default(1)
// @Param        limit         query  int     false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.Response{data=[]domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Router       /public/entries [get]
func (h *DeliveryHandler) ListEntries(c *gin.Context) {
	envID, ok := h.resolveEnvironment(c)
	if !ok {
		return
	}

	filter := repository.EntryFilter{
		ContentType: c.Query("content_type"),
		Page:        ginutil.QueryInt(c, "page", 1),
		Limit:       ginutil.QueryInt(c, "limit", 20),
	}

	entries, total, err := h.entries.ListPublished(c.Request.Context(), middleware.GetSpaceID(c), envID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessWithMeta(c, entries, common.NewMeta(filter.Page, filter.Limit, total))
}

// ListContentTypes godoc
// @Summary      콘텐츠 타입 목록 조회 (전송 API)
// @Description  서브도메인으로 식별된 스페이스의 콘텐츠 타입 스키마를 조회합니다. 클라이언트가 엔트리 렌더링에 사용합니다
// @Tags         delivery
// @Produce      json
// @Param        environment  query  string  false  "환경 이름"  default(master)
// @Success      200  {object}  common.Response{data=[]domain.ContentType}
// @Failure      404  {object}  common.Response
// @Router       /public/content_types [get]
func (h *DeliveryHandler) ListContentTypes(c *gin.Context) {
	envID, ok := h.resolveEnvironment(c)
	if !ok {
		return
	}

	types, err := h.ctypes.ListPublic(middleware.GetSpaceID(c), envID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, types)
}

// GetEntry godoc
// @Summary      발행 엔트리 조회 (전송 API)
// @Description  엔트리의 마지막 발행 스냅샷을 반환합니다. draft 편집 내용은 보이지 않습니다
// @Tags         delivery
// @Produce      json
// @Param        id           path   int     true   "엔트리 ID"
// @Param        environment  query  string  false  "환경 이름"  default(master)
// @Success      200  {object}  common.Response{data=domain.EntryResponse}
// @Failure      404  {object}  common.Response
// @Router       /public/entries/{id} [get]
func (h *DeliveryHandler) GetEntry(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 엔트리 ID", err)
		return
	}

	envID, ok := h.resolveEnvironment(c)
	if !ok {
		return
	}

	entry, err := h.entries.GetPublished(c.Request.Context(), middleware.GetSpaceID(c), envID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, entry)
}
