package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestSpaceRepo(t *testing.T) repository.SpaceRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Space{}, &domain.Environment{}, &domain.SpaceMember{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewSpaceRepository(db)
	if err := repo.Create(&domain.Space{ID: "sp-1", Name: "One", Subdomain: "one"}); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	if err := repo.CreateEnvironment(&domain.Environment{SpaceID: "sp-1", Name: "master"}); err != nil {
		t.Fatalf("seed env: %v", err)
	}
	if err := repo.Create(&domain.Space{ID: "sp-frozen", Name: "Frozen", Subdomain: "frozen"}); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	if err := repo.SetSuspended("sp-frozen", true); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	return repo
}

func TestRequireSpace_Found(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	var gotSpaceID string
	r.GET("/spaces/:space_id", RequireSpace(newTestSpaceRepo(t)), func(c *gin.Context) {
		gotSpaceID = GetSpaceID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/spaces/sp-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if gotSpaceID != "sp-1" {
		t.Errorf("expected spaceID sp-1, got %q", gotSpaceID)
	}
}

func TestRequireSpace_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.GET("/spaces/:space_id", RequireSpace(newTestSpaceRepo(t)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/spaces/sp-ghost", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRequireSpace_Suspended(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.GET("/spaces/:space_id", RequireSpace(newTestSpaceRepo(t)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/spaces/sp-frozen", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireEnvironment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newTestSpaceRepo(t)

	var gotEnvID uint64
	handler := func(c *gin.Context) {
		gotEnvID = GetEnvID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.GET("/spaces/:space_id/environments/:env_name/ping", RequireSpace(repo), RequireEnvironment(repo), handler)

	req, _ := http.NewRequest("GET", "/spaces/sp-1/environments/master/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if gotEnvID == 0 {
		t.Error("expected envID to be set")
	}

	// 없는 환경은 404
	w = httptest.NewRecorder()
	_, r = gin.CreateTestContext(w)
	r.GET("/spaces/:space_id/environments/:env_name/ping", RequireSpace(repo), RequireEnvironment(repo), handler)

	req, _ = http.NewRequest("GET", "/spaces/sp-1/environments/staging/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// fakeResolver serves DeliverySpace tests without a database
type fakeResolver struct {
	spaces map[string]*domain.Space
}

func (f *fakeResolver) GetSpaceBySubdomain(_ context.Context, subdomain string) (*domain.Space, error) {
	if space, ok := f.spaces[subdomain]; ok {
		return space, nil
	}
	return nil, common.ErrSpaceNotFound
}

func deliveryTestRouter(handlerSpaceID *string) (*gin.Engine, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	resolver := &fakeResolver{spaces: map[string]*domain.Space{
		"one":    {ID: "sp-1", Subdomain: "one"},
		"frozen": {ID: "sp-frozen", Subdomain: "frozen", Suspended: true},
	}}

	r.GET("/api/public/entries", DeliverySpace(resolver, "vellum.dev"), func(c *gin.Context) {
		*handlerSpaceID = GetSpaceID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, w
}

func TestDeliverySpace_FromHost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotSpaceID string
	r, w := deliveryTestRouter(&gotSpaceID)

	req, _ := http.NewRequest("GET", "/api/public/entries", nil)
	req.Host = "one.vellum.dev"
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if gotSpaceID != "sp-1" {
		t.Errorf("expected sp-1, got %q", gotSpaceID)
	}
}

func TestDeliverySpace_FromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotSpaceID string
	r, w := deliveryTestRouter(&gotSpaceID)

	req, _ := http.NewRequest("GET", "/api/public/entries", nil)
	req.Host = "edge-proxy.internal"
	req.Header.Set("X-Space-Subdomain", "one")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if gotSpaceID != "sp-1" {
		t.Errorf("expected sp-1, got %q", gotSpaceID)
	}
}

func TestDeliverySpace_Rejections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		host     string
		header   string
		wantCode int
	}{
		{"unknown subdomain", "nope.vellum.dev", "", http.StatusNotFound},
		{"reserved subdomain", "www.vellum.dev", "", http.StatusNotFound},
		{"bare domain", "vellum.dev", "", http.StatusNotFound},
		{"suspended space", "frozen.vellum.dev", "", http.StatusForbidden},
		{"suspended via header", "edge-proxy.internal", "frozen", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotSpaceID string
			r, w := deliveryTestRouter(&gotSpaceID)

			req, _ := http.NewRequest("GET", "/api/public/entries", nil)
			req.Host = tc.host
			if tc.header != "" {
				req.Header.Set("X-Space-Subdomain", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, w.Code)
			}
		})
	}
}
