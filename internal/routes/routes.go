package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/vellum-cms/vellum-backend/internal/config"
	"github.com/vellum-cms/vellum-backend/internal/eventlog"
	"github.com/vellum-cms/vellum-backend/internal/handler"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"github.com/vellum-cms/vellum-backend/internal/service"
	"github.com/vellum-cms/vellum-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	spaceHandler *handler.SpaceHandler,
	ctypeHandler *handler.ContentTypeHandler,
	entryHandler *handler.EntryHandler,
	scheduleHandler *handler.ScheduleHandler,
	deliveryHandler *handler.DeliveryHandler,
	eventHandler *eventlog.Handler,
	spaceRepo repository.SpaceRepository,
	spaceService *service.SpaceService,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	api := router.Group("/api/v2")

	// Authentication endpoints (인증 불필요)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// Space Management (스페이스 관리 - 로그인 필요)
	spaces := api.Group("/spaces", middleware.JWTAuth(jwtManager))
	spaces.POST("", spaceHandler.CreateSpace)

	// 스페이스 스코프: 존재/정지 여부를 미들웨어에서 먼저 거른다
	spaceScoped := spaces.Group("/:space_id", middleware.RequireSpace(spaceRepo))
	{
		spaceScoped.GET("", spaceHandler.GetSpace)
		spaceScoped.PATCH("", spaceHandler.UpdateSpace)
		spaceScoped.DELETE("", spaceHandler.DeleteSpace)

		// 환경
		environments := spaceScoped.Group("/environments")
		environments.POST("", spaceHandler.CreateEnvironment)
		environments.GET("", spaceHandler.ListEnvironments)

		// 멤버십
		members := spaceScoped.Group("/members")
		members.POST("", spaceHandler.AddMember)
		members.GET("", spaceHandler.ListMembers)
		members.PATCH("/:user_id", spaceHandler.UpdateMemberRole)
		members.DELETE("/:user_id", spaceHandler.RemoveMember)

		// 스페이스 전체 예약 조회
		spaceScoped.GET("/scheduled_actions", scheduleHandler.ListForSpace)
		spaceScoped.GET("/scheduled_actions/:action_id", scheduleHandler.GetAction)

		// 환경 스코프 콘텐츠 (환경 이름 → ID 해석은 미들웨어가 담당)
		env := environments.Group("/:env_name", middleware.RequireEnvironment(spaceRepo))
		{
			env.DELETE("", spaceHandler.DeleteEnvironment)

			// 콘텐츠 타입
			ctypes := env.Group("/content_types")
			ctypes.GET("", ctypeHandler.List)
			ctypes.GET("/:type_id", ctypeHandler.Get)
			ctypes.PUT("/:type_id", ctypeHandler.Upsert)
			ctypes.DELETE("/:type_id", ctypeHandler.Delete)

			// 엔트리 라이프사이클
			entries := env.Group("/entries")
			entries.POST("", entryHandler.Create)
			entries.GET("", entryHandler.List)
			entries.GET("/:id", entryHandler.Get)
			entries.PATCH("/:id", entryHandler.Update)
			entries.DELETE("/:id", entryHandler.Delete)

			// 발행/보관 전환 (PUT이 상태로 올리고 DELETE가 되돌린다)
			entries.PUT("/:id/published", entryHandler.Publish)
			entries.DELETE("/:id/published", entryHandler.Unpublish)
			entries.PUT("/:id/archived", entryHandler.Archive)
			entries.DELETE("/:id/archived", entryHandler.Restore)

			// 발행 스냅샷
			entries.GET("/:id/snapshots", entryHandler.ListSnapshots)
			entries.POST("/:id/snapshots/:snapshot_id/restore", entryHandler.RestoreFromSnapshot)

			// 예약 발행
			entries.POST("/:id/scheduled_actions", scheduleHandler.Schedule)
			entries.GET("/:id/scheduled_actions", scheduleHandler.ListForEntry)
			entries.DELETE("/:id/scheduled_actions", scheduleHandler.CancelSchedule)
		}
	}

	// Admin (플랫폼 관리자 전용 - 정지된 스페이스도 다뤄야 하므로 RequireSpace를 쓰지 않는다)
	admin := api.Group("/admin", middleware.JWTAuth(jwtManager))
	admin.GET("/spaces", spaceHandler.ListSpaces)
	admin.PUT("/spaces/:space_id/suspension", spaceHandler.SetSuspension)

	// 라이프사이클 이벤트 로그 (ClickHouse가 켜진 경우에만)
	if eventHandler != nil {
		events := admin.Group("/events")
		events.GET("/stats", eventHandler.GetStats)
		events.GET("/timeseries", eventHandler.GetTimeseries)
		events.GET("/recent", eventHandler.GetRecent)
		events.GET("/topics", eventHandler.GetTopicCounts)
	}

	// Delivery API (공개 - 서브도메인으로 스페이스 식별)
	public := router.Group("/api/public", middleware.DeliverySpace(spaceService, cfg.Delivery.BaseDomain))
	if redisClient != nil && cfg.RateLimit.Enabled {
		limitCfg := middleware.DefaultRateLimitConfig()
		limitCfg.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
		public.Use(middleware.RateLimit(redisClient, limitCfg))
	}

	// 목록 응답만 짧은 TTL로 캐시한다. 상세 응답은 서비스 캐시가
	// 발행/해제 시점에 무효화하므로 여기서 또 캐시하지 않는다.
	listEntries := []gin.HandlerFunc{deliveryHandler.ListEntries}
	listTypes := []gin.HandlerFunc{deliveryHandler.ListContentTypes}
	if redisClient != nil {
		listEntries = []gin.HandlerFunc{middleware.Cache(redisClient, middleware.DefaultCacheConfig()), deliveryHandler.ListEntries}
		// 스키마는 거의 바뀌지 않으므로 길게 캐시한다
		listTypes = []gin.HandlerFunc{middleware.CacheWithTTL(redisClient, 10*time.Minute), deliveryHandler.ListContentTypes}
	}
	public.GET("/entries", listEntries...)
	public.GET("/entries/:id", deliveryHandler.GetEntry)
	public.GET("/content_types", listTypes...)
}
