package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillup-labs/skillup/utils"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		id, _ := ctx.Get(ContextUserIDKey)
		ctx.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func requestWithHeader(t *testing.T, router *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	token, err := utils.GenerateToken(7, "ada", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := requestWithHeader(t, router, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRequired_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := requestWithHeader(t, router, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	token, err := utils.GenerateToken(7, "ada", -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := requestWithHeader(t, router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
