package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		userID   string
		userName string
		wantOK   bool
	}{
		{"valid uuid", "a3f1c2d4-0000-4000-8000-000000000001", "Анна Смирнова", true},
		{"missing header", "", "", false},
		{"malformed uuid", "not-a-uuid", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Identity())
			r.GET("/probe", func(c *gin.Context) {
				current, ok := CurrentUser(c)
				if ok != tt.wantOK {
					t.Errorf("CurrentUser ok = %v, want %v", ok, tt.wantOK)
				}
				if ok {
					if current.ID != tt.userID {
						t.Errorf("ID = %q, want %q", current.ID, tt.userID)
					}
					if current.DisplayName != tt.userName {
						t.Errorf("DisplayName = %q, want %q", current.DisplayName, tt.userName)
					}
				}
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
				req.Header.Set("X-User-Name", tt.userName)
			}
			r.ServeHTTP(w, req)
		})
	}
}
