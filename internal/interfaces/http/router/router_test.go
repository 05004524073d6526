package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type registrarFunc func(rg *gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "/api", r.prefix)
	assert.Empty(t, r.registrars)
}

func TestRouterWithPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithPrefix("/api/v2"))

	assert.Equal(t, "/api/v2", r.prefix)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(registrarFunc(func(rg *gin.RouterGroup) {}))

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
	}))
	r.Setup()

	req := httptest.NewRequest("GET", "/api/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterMultipleRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	shopify := registrarFunc(func(rg *gin.RouterGroup) {
		group := rg.Group("/shopify")
		group.GET("/data", func(c *gin.Context) {
			c.String(http.StatusOK, "data")
		})
	})
	system := registrarFunc(func(rg *gin.RouterGroup) {
		group := rg.Group("/system")
		group.GET("/health", func(c *gin.Context) {
			c.String(http.StatusOK, "healthy")
		})
	})

	r.Register(shopify).Register(system)
	r.Setup()

	req1 := httptest.NewRequest("GET", "/api/shopify/data", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "data", w1.Body.String())

	req2 := httptest.NewRequest("GET", "/api/system/health", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "healthy", w2.Body.String())
}

func TestRouterCustomPrefixRouting(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithPrefix("/internal"))

	r.Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/status", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
	}))
	r.Setup()

	// Route lives under the custom prefix
	req := httptest.NewRequest("GET", "/internal/status", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Not under the default one
	req = httptest.NewRequest("GET", "/api/status", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
