package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/service"
	"github.com/vellum-cms/vellum-backend/pkg/ginutil"
)

// spaceValidator carries the subdomain/locale rules that gin's binding
// tags cannot express. Failing here gives a 400 before the service runs.
var spaceValidator = newSpaceValidator()

func newSpaceValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
		return common.ValidateSubdomain(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || common.ValidateLocale(s) == nil
	})
	return v
}

// SpaceHandler handles space, environment and membership requests
type SpaceHandler struct {
	service *service.SpaceService
}

// NewSpaceHandler creates a new SpaceHandler
func NewSpaceHandler(service *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

// updateMemberRoleRequest is the payload for role changes
type updateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin editor viewer"`
}

// suspensionRequest is the payload for admin suspension toggles
type suspensionRequest struct {
	Suspended bool `json:"suspended"`
}

// ========================================
// Spaces
// ========================================

// CreateSpace godoc
// @Summary      스페이스 생성
// @Description  새 스페이스를 프로비저닝합니다. 생성자가 소유자가 되고 master 환경이 함께 만들어집니다
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateSpaceRequest  true  "스페이스 생성 요청"
// @Success      201  {object}  common.Response{data=domain.Space}
// @Failure      400  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /spaces [post]
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	var req domain.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}
	if err := spaceValidator.Var(req.Subdomain, "subdomain"); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "사용할 수 없는 서브도메인입니다", common.ErrInvalidSubdomain)
		return
	}
	if err := spaceValidator.Var(req.DefaultLocale, "locale"); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 로케일 형식입니다", common.ErrInvalidLocale)
		return
	}

	space, err := h.service.CreateSpace(currentActor(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, space)
}

// GetSpace godoc
// @Summary      스페이스 조회
// @Tags         spaces
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Success      200  {object}  common.Response{data=domain.Space}
// @Failure      403  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id} [get]
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	space, err := h.service.GetSpace(currentActor(c), c.Param("space_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, space)
}

// UpdateSpace godoc
// @Summary      스페이스 설정 변경
// @Description  이름, 플랜, 기본 로케일을 변경합니다
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string                     true  "스페이스 ID"
// @Param        request   body  domain.UpdateSpaceRequest  true  "변경 요청"
// @Success      200  {object}  common.Response{data=domain.Space}
// @Failure      400  {object}  common.Response
// @Failure      403  {object}  common.Response
// @Router       /spaces/{space_id} [patch]
func (h *SpaceHandler) UpdateSpace(c *gin.Context) {
	var req domain.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	space, err := h.service.UpdateSpace(currentActor(c), c.Param("space_id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, space)
}

// DeleteSpace godoc
// @Summary      스페이스 삭제
// @Description  스페이스를 삭제합니다. 해당 서브도메인의 API는 즉시 동작을 멈춥니다 (소유자만 가능)
// @Tags         spaces
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Success      204  "No Content"
// @Failure      403  {object}  common.Response
// @Router       /spaces/{space_id} [delete]
func (h *SpaceHandler) DeleteSpace(c *gin.Context) {
	if err := h.service.DeleteSpace(currentActor(c), c.Param("space_id")); err != nil {
		handleServiceError(c, err)
		return
	}

	common.NoContentResponse(c)
}

// ========================================
// Environments
// ========================================

// createEnvironmentRequest names the environment to create
type createEnvironmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateEnvironment godoc
// @Summary      환경 생성
// @Tags         environments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Success      201  {object}  common.Response{data=domain.Environment}
// @Failure      400  {object}  common.Response
// @Failure      403  {object}  common.Response
// @Router       /spaces/{space_id}/environments [post]
func (h *SpaceHandler) CreateEnvironment(c *gin.Context) {
	var req createEnvironmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	env, err := h.service.CreateEnvironment(currentActor(c), c.Param("space_id"), req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, env)
}

// ListEnvironments godoc
// @Summary      환경 목록 조회
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Success      200  {object}  common.Response{data=[]domain.Environment}
// @Router       /spaces/{space_id}/environments [get]
func (h *SpaceHandler) ListEnvironments(c *gin.Context) {
	envs, err := h.service.ListEnvironments(currentActor(c), c.Param("space_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, envs)
}

// DeleteEnvironment godoc
// @Summary      환경 삭제
// @Description  환경과 그 안의 모든 엔트리를 삭제합니다. master 환경은 삭제할 수 없습니다
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        env_name  path  string  true  "환경 이름"
// @Success      204  "No Content"
// @Failure      400  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/environments/{env_name} [delete]
func (h *SpaceHandler) DeleteEnvironment(c *gin.Context) {
	err := h.service.DeleteEnvironment(currentActor(c), c.Param("space_id"), c.Param("env_name"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.NoContentResponse(c)
}

// ========================================
// Members
// ========================================

// AddMember godoc
// @Summary      멤버 추가
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string                   true  "스페이스 ID"
// @Param        request   body  domain.AddMemberRequest  true  "멤버 추가 요청"
// @Success      201  {object}  common.Response{data=domain.SpaceMember}
// @Failure      400  {object}  common.Response
// @Failure      403  {object}  common.Response
// @Router       /spaces/{space_id}/members [post]
func (h *SpaceHandler) AddMember(c *gin.Context) {
	var req domain.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	member, err := h.service.AddMember(currentActor(c), c.Param("space_id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, member)
}

// ListMembers godoc
// @Summary      멤버 목록 조회
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Success      200  {object}  common.Response{data=[]domain.SpaceMember}
// @Router       /spaces/{space_id}/members [get]
func (h *SpaceHandler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(currentActor(c), c.Param("space_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, members)
}

// UpdateMemberRole godoc
// @Summary      멤버 역할 변경
// @Description  마지막 소유자의 역할은 변경할 수 없습니다
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        user_id   path  int     true  "사용자 ID"
// @Success      200  {object}  common.Response
// @Failure      400  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/members/{user_id} [patch]
func (h *SpaceHandler) UpdateMemberRole(c *gin.Context) {
	userID, err := ginutil.ParamUint64(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 사용자 ID", err)
		return
	}

	var req updateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	if err := h.service.UpdateMemberRole(currentActor(c), c.Param("space_id"), userID, req.Role); err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"user_id": userID, "role": req.Role})
}

// RemoveMember godoc
// @Summary      멤버 제거
// @Description  마지막 소유자는 제거할 수 없습니다
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Param        user_id   path  int     true  "사용자 ID"
// @Success      204  "No Content"
// @Failure      400  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /spaces/{space_id}/members/{user_id} [delete]
func (h *SpaceHandler) RemoveMember(c *gin.Context) {
	userID, err := ginutil.ParamUint64(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 사용자 ID", err)
		return
	}

	if err := h.service.RemoveMember(currentActor(c), c.Param("space_id"), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	common.NoContentResponse(c)
}

// ========================================
// Admin Endpoints (플랫폼 관리자 전용)
// ========================================

// ListSpaces godoc
// @Summary      전체 스페이스 목록 조회 (관리자)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "active | suspended"
// @Param        page    query  int     false  "페이지 번호"  default(1)
// @Param        limit   query  int     false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.Response{data=[]domain.Space}
// @Failure      403  {object}  common.Response
// @Router       /admin/spaces [get]
func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)
	status := c.Query("status")

	spaces, total, err := h.service.ListSpaces(currentActor(c), status, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessWithMeta(c, spaces, common.NewMeta(page, limit, total))
}

// SetSuspension godoc
// @Summary      스페이스 정지/해제 (관리자)
// @Description  정지된 스페이스는 관리 API와 전송 API 모두 차단됩니다
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        space_id  path  string  true  "스페이스 ID"
// @Success      200  {object}  common.Response
// @Failure      403  {object}  common.Response
// @Failure      404  {object}  common.Response
// @Router       /admin/spaces/{space_id}/suspension [put]
func (h *SpaceHandler) SetSuspension(c *gin.Context) {
	var req suspensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	spaceID := c.Param("space_id")
	if err := h.service.SetSuspended(currentActor(c), spaceID, req.Suspended); err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"space_id": spaceID, "suspended": req.Suspended})
}
