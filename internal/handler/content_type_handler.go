package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/service"
)

// ContentTypeHandler handles content type requests
type ContentTypeHandler struct {
	service *service.ContentTypeService
}

// NewContentTypeHandler creates a new ContentTypeHandler
func NewContentTypeHandler(service *service.ContentTypeService) *ContentTypeHandler {
	return &ContentTypeHandler{service: service}
}

// Upsert godoc
// @Summary      콘텐츠 타입 저장
// @Description  콘텐츠 타입을 생성하거나 전체 교체합니다
// @Tags         content-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string                           true  "스페이스 ID"
// @Param        env_name  path  string                           true  "환경 이름"
// @Param        type_id   path  string                           true  "콘텐츠 타입 ID (예: blogPost)"
// @Param        request   body  domain.UpsertContentTypeRequest  true  "콘텐츠 타입 정의"
// @Success      200  {object}  common.Response{data=domain.ContentType}
// @Failure      400  {object}  common.Response
// @Failure      403  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/content_types/{type_id} [put]
func (h *ContentTypeHandler) Upsert(c *gin.Context) {
	var req domain.UpsertContentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	ctype, err := h.service.Upsert(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), c.Param("type_id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, ctype)
}

// Get godoc
// @Summary      콘텐츠 타입 조회
// @Tags         content-types
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        type_id   path  string  true  "콘텐츠 타입 ID"
// @Success      200  {object}  common.Response{data=domain.ContentType}
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/content_types/{type_id} [get]
func (h *ContentTypeHandler) Get(c *gin.Context) {
	ctype, err := h.service.Get(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), c.Param("type_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, ctype)
}

// List godoc
// @Summary      콘텐츠 타입 목록 조회
// @Tags         content-types
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Success      200  {object}  common.Response{data=[]domain.ContentType}
// @Router       /spaces/{space_id}/environments/{env_name}/content_types [get]
func (h *ContentTypeHandler) List(c *gin.Context) {
	ctypes, err := h.service.List(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, ctypes)
}

// Delete godoc
// @Summary      콘텐츠 타입 삭제
// @Description  해당 타입의 엔트리가 하나라도 있으면 삭제가 거부됩니다
// @Tags         content-types
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Param        type_id   path  string  true  "콘텐츠 타입 ID"
// @Success      204  "No Content"
// @Failure      400  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name}/content_types/{type_id} [delete]
func (h *ContentTypeHandler) Delete(c *gin.Context) {
	err := h.service.Delete(currentActor(c), middleware.GetSpaceID(c), middleware.GetEnvID(c), c.Param("type_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.NoContentResponse(c)
}
