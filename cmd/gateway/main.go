package main

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Strangler-pattern gateway: entry lifecycle traffic goes to the engine,
// everything else keeps hitting the legacy CMS until it is retired.
func main() {
	// 환경 변수
	legacyCMSURL := getEnv("LEGACY_CMS_URL", "http://localhost:80")
	engineAPIURL := getEnv("ENGINE_API_URL", "http://localhost:8082")
	gatewayPort := getEnv("GATEWAY_PORT", "8080")
	allowOrigins := getEnv("GATEWAY_ALLOW_ORIGINS", "http://localhost:3000")

	log.Printf("Starting API Gateway on port %s", gatewayPort)
	log.Printf("Legacy CMS: %s", legacyCMSURL)
	log.Printf("Engine API: %s", engineAPIURL)

	// 프록시 대상 URL 파싱
	engineTarget, err := url.Parse(engineAPIURL)
	if err != nil {
		log.Fatalf("Invalid ENGINE_API_URL: %v", err)
	}
	legacyTarget, err := url.Parse(legacyCMSURL)
	if err != nil {
		log.Fatalf("Invalid LEGACY_CMS_URL: %v", err)
	}

	// 리버스 프록시 생성
	engineProxy := httputil.NewSingleHostReverseProxy(engineTarget)
	legacyProxy := httputil.NewSingleHostReverseProxy(legacyTarget)

	// Gin 라우터 생성
	router := gin.Default()

	// CORS 설정
	origins := []string{}
	for _, o := range strings.Split(allowOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Space-Subdomain"},
		AllowCredentials: true,
	}))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Gateway OK")
	})

	// 관리 API → 엔진
	router.Any("/api/v2/*path", func(c *gin.Context) {
		log.Printf("Proxying to engine: %s %s", c.Request.Method, c.Request.URL.Path)
		engineProxy.ServeHTTP(c.Writer, c.Request)
	})

	// 전송(공개) API → 엔진. 서브도메인 기반 스페이스 식별이 동작하도록
	// Host 헤더는 손대지 않는다.
	router.Any("/api/public/*path", func(c *gin.Context) {
		log.Printf("Proxying to engine: %s %s", c.Request.Method, c.Request.URL.Path)
		engineProxy.ServeHTTP(c.Writer, c.Request)
	})

	// 그 외 모든 요청 → 레거시 CMS
	router.NoRoute(func(c *gin.Context) {
		log.Printf("Proxying to legacy CMS (default): %s %s", c.Request.Method, c.Request.URL.Path)
		legacyProxy.ServeHTTP(c.Writer, c.Request)
	})

	// 서버 시작
	addr := fmt.Sprintf(":%s", gatewayPort)
	log.Printf("Gateway listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start gateway: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
