package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/service"
)

// currentActor builds the acting user from the authenticated request context
func currentActor(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrEntryNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "엔트리를 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrSnapshotNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "스냅샷을 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrScheduledActionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "예약 작업을 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrSpaceNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "스페이스를 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrEnvironmentNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "환경을 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrContentTypeNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "콘텐츠 타입을 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "사용자를 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "리소스를 찾을 수 없습니다", err)
	case errors.Is(err, common.ErrSpaceSuspended):
		common.ErrorResponse(c, http.StatusForbidden, "정지된 스페이스입니다", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "권한이 없습니다", err)
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidCredentials):
		common.ErrorResponse(c, http.StatusUnauthorized, "인증에 실패했습니다", err)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrExpiredToken):
		common.ErrorResponse(c, http.StatusUnauthorized, "유효하지 않은 토큰입니다", err)
	case errors.Is(err, common.ErrInvalidTransition):
		common.ErrorResponse(c, http.StatusConflict, "현재 상태에서 허용되지 않는 전환입니다", err)
	case errors.Is(err, common.ErrConcurrentModification):
		common.ErrorResponse(c, http.StatusConflict, "엔트리가 동시에 수정되었습니다. 다시 시도해주세요", err)
	case errors.Is(err, common.ErrSubdomainTaken):
		common.ErrorResponse(c, http.StatusConflict, "이미 사용 중인 서브도메인입니다", err)
	case errors.Is(err, common.ErrUserAlreadyExists):
		common.ErrorResponse(c, http.StatusConflict, "이미 존재하는 계정입니다", err)
	case errors.Is(err, common.ErrInvalidSchedule):
		common.ErrorResponse(c, http.StatusBadRequest, "유효하지 않은 예약입니다", err)
	case errors.Is(err, common.ErrInvalidSubdomain):
		common.ErrorResponse(c, http.StatusBadRequest, "서브도메인 형식이 올바르지 않습니다", err)
	case errors.Is(err, common.ErrReservedSubdomain):
		common.ErrorResponse(c, http.StatusBadRequest, "예약된 서브도메인입니다", err)
	case errors.Is(err, common.ErrInvalidIdentifier):
		common.ErrorResponse(c, http.StatusBadRequest, "식별자 형식이 올바르지 않습니다", err)
	case errors.Is(err, common.ErrInvalidLocale):
		common.ErrorResponse(c, http.StatusBadRequest, "로케일 코드가 올바르지 않습니다", err)
	case errors.Is(err, common.ErrInvalidInput):
		// 검증 실패는 서비스가 만든 메시지를 그대로 내려준다
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "서버 오류가 발생했습니다", err)
	}
}
