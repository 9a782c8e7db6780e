package middleware

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"gorm.io/gorm"
)

// SpaceResolver resolves a delivery tenant by subdomain. Satisfied by
// service.SpaceService, which reads through the Redis cache.
type SpaceResolver interface {
	GetSpaceBySubdomain(ctx context.Context, subdomain string) (*domain.Space, error)
}

// RequireSpace resolves the :space_id path parameter on the management API,
// rejects suspended spaces, and stores the space in the Gin context.
func RequireSpace(spaceRepo repository.SpaceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		spaceID := c.Param("space_id")
		if spaceID == "" {
			common.ErrorResponse(c, 400, "Space ID required", nil)
			c.Abort()
			return
		}

		space, err := spaceRepo.FindByID(spaceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				common.ErrorResponse(c, 404, "Space not found", nil)
			} else {
				common.ErrorResponse(c, 500, "Failed to resolve space", err)
			}
			c.Abort()
			return
		}

		// 정지된 스페이스는 관리 API도 차단한다
		if space.Suspended {
			common.ErrorResponse(c, 403, "Space is suspended", common.ErrSpaceSuspended)
			c.Abort()
			return
		}

		c.Set("space", space)
		c.Set("spaceID", space.ID)

		c.Next()
	}
}

// RequireEnvironment resolves the :env_name path parameter within the
// current space and stores the environment ID in the context. Must run
// after RequireSpace.
func RequireEnvironment(spaceRepo repository.SpaceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		spaceID := GetSpaceID(c)
		name := c.Param("env_name")
		if name == "" {
			name = domain.DefaultEnvironment
		}

		env, err := spaceRepo.FindEnvironment(spaceID, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				common.ErrorResponse(c, 404, "Environment not found", nil)
			} else {
				common.ErrorResponse(c, 500, "Failed to resolve environment", err)
			}
			c.Abort()
			return
		}

		c.Set("envID", env.ID)
		c.Set("envName", env.Name)

		c.Next()
	}
}

// DeliverySpace resolves the tenant behind a public delivery request.
// The subdomain comes from the X-Space-Subdomain header when the edge proxy
// sets it, otherwise from the Host header.
func DeliverySpace(resolver SpaceResolver, baseDomain string) gin.HandlerFunc {
	subdomainRegex := regexp.MustCompile(`^([a-z0-9-]+)\.` + regexp.QuoteMeta(baseDomain) + `$`)

	return func(c *gin.Context) {
		var subdomain string

		if header := c.GetHeader("X-Space-Subdomain"); header != "" {
			subdomain = strings.ToLower(header)
		} else {
			host := strings.ToLower(strings.Split(c.Request.Host, ":")[0])
			matches := subdomainRegex.FindStringSubmatch(host)
			if len(matches) < 2 {
				common.ErrorResponse(c, 404, "Space not found", nil)
				c.Abort()
				return
			}
			subdomain = matches[1]
		}

		if common.IsReservedSubdomain(subdomain) {
			common.ErrorResponse(c, 404, "Space not found", nil)
			c.Abort()
			return
		}

		space, err := resolver.GetSpaceBySubdomain(c.Request.Context(), subdomain)
		if err != nil {
			if errors.Is(err, common.ErrSpaceNotFound) {
				common.ErrorResponse(c, 404, "Space not found", nil)
			} else {
				common.ErrorResponse(c, 500, "Failed to resolve space", err)
			}
			c.Abort()
			return
		}

		if space.Suspended {
			common.ErrorResponse(c, 403, "Space is suspended", common.ErrSpaceSuspended)
			c.Abort()
			return
		}

		c.Set("space", space)
		c.Set("spaceID", space.ID)

		c.Next()
	}
}

// GetSpace extracts the resolved space from the Gin context
func GetSpace(c *gin.Context) *domain.Space {
	space, exists := c.Get("space")
	if !exists {
		return nil
	}
	if s, ok := space.(*domain.Space); ok {
		return s
	}
	return nil
}

// GetSpaceID extracts the resolved space ID from context
func GetSpaceID(c *gin.Context) string {
	spaceID, exists := c.Get("spaceID")
	if !exists {
		return ""
	}
	if str, ok := spaceID.(string); ok {
		return str
	}
	return ""
}

// GetEnvID extracts the resolved environment ID from context
func GetEnvID(c *gin.Context) uint64 {
	envID, exists := c.Get("envID")
	if !exists {
		return 0
	}
	if id, ok := envID.(uint64); ok {
		return id
	}
	return 0
}
