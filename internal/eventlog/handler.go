package eventlog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
)

// Handler serves lifecycle event analytics to platform admins
type Handler struct {
	repo *Repository
}

// NewHandler creates a new event log Handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// requireAdmin checks for the platform admin role
func requireAdmin(c *gin.Context) bool {
	if middleware.GetRole(c) != domain.PlatformRoleAdmin {
		common.ErrorResponse(c, http.StatusForbidden, "관리자 권한이 필요합니다", nil)
		return false
	}
	return true
}

// GetStats handles GET /api/v2/admin/events/stats
func (h *Handler) GetStats(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.repo.GetStats(ctx, c.Query("space_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "이벤트 통계 조회 실패", err)
		return
	}

	common.SuccessResponse(c, stats)
}

// GetTimeseries handles GET /api/v2/admin/events/timeseries
func (h *Handler) GetTimeseries(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	dateFrom := c.DefaultQuery("date_from", time.Now().AddDate(0, 0, -7).Format("2006-01-02"))
	dateTo := c.DefaultQuery("date_to", time.Now().Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	buckets, err := h.repo.GetTimeseries(ctx, c.Query("space_id"), dateFrom, dateTo)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "타임시리즈 조회 실패", err)
		return
	}

	common.SuccessResponse(c, buckets)
}

// GetRecent handles GET /api/v2/admin/events/recent
func (h *Handler) GetRecent(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	entryID, _ := strconv.ParseUint(c.Query("entry_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	events, err := h.repo.GetRecent(ctx, c.Query("space_id"), entryID, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "이벤트 목록 조회 실패", err)
		return
	}

	common.SuccessResponse(c, events)
}

// GetTopicCounts handles GET /api/v2/admin/events/topics
func (h *Handler) GetTopicCounts(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	dateFrom := c.DefaultQuery("date_from", time.Now().AddDate(0, 0, -7).Format("2006-01-02"))
	dateTo := c.DefaultQuery("date_to", time.Now().Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	counts, err := h.repo.GetTopicCounts(ctx, c.Query("space_id"), dateFrom, dateTo)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "이벤트 유형별 집계 실패", err)
		return
	}

	common.SuccessResponse(c, counts)
}
