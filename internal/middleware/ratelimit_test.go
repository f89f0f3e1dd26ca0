package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(nil, 10, time.Minute))
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without a redis client, got %d", rec.Code)
	}
}

func TestRateLimit_DisabledWithZeroLimit(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(nil, 0, time.Minute))
	router.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with limiting disabled, got %d", rec.Code)
	}
}
