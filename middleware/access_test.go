package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/models"
	"github.com/storefront-api/services"
)

func TestRuleMatch(t *testing.T) {
	tests := []struct {
		rule   Rule
		method string
		path   string
		want   bool
	}{
		{Rule{Pattern: "/api/users/me"}, http.MethodGet, "/api/users/me", true},
		{Rule{Pattern: "/api/users/me"}, http.MethodGet, "/api/users/me/", true},
		{Rule{Pattern: "/api/users/me"}, http.MethodGet, "/api/users/1", false},
		{Rule{Method: http.MethodPost, Pattern: "/api/users/login"}, http.MethodGet, "/api/users/login", false},
		{Rule{Pattern: "/api/products/*/rating"}, http.MethodPost, "/api/products/7/rating", true},
		{Rule{Pattern: "/api/products/*/rating"}, http.MethodPost, "/api/products/rating", false},
		{Rule{Pattern: "/api/products/*/rating/**"}, http.MethodGet, "/api/products/7/rating", true},
		{Rule{Pattern: "/api/products/*/rating/**"}, http.MethodGet, "/api/products/7/rating/average", true},
		{Rule{Pattern: "/api/store/public/**"}, http.MethodGet, "/api/store/public", true},
		{Rule{Pattern: "/api/store/public/**"}, http.MethodGet, "/api/store/public/3", true},
		{Rule{Pattern: "/api/store/public/**"}, http.MethodGet, "/api/store/3", false},
		{Rule{Pattern: "/**"}, http.MethodGet, "/", true},
		{Rule{Pattern: "/**"}, http.MethodGet, "/anything/at/all", true},
		{Rule{Pattern: "/a/**/c"}, http.MethodGet, "/a/c", true},
		{Rule{Pattern: "/a/**/c"}, http.MethodGet, "/a/b/b/c", true},
		{Rule{Pattern: "/a/**/c"}, http.MethodGet, "/a/b/d", false},
	}
	for _, tt := range tests {
		if got := tt.rule.Match(tt.method, tt.path); got != tt.want {
			t.Errorf("%s %q against %s %q = %v, want %v", tt.rule.Method, tt.rule.Pattern, tt.method, tt.path, got, tt.want)
		}
	}
}

func TestDecide(t *testing.T) {
	rules := []Rule{
		{Method: http.MethodGet, Pattern: "/open/**", Access: Public},
		{Pattern: "/admin/**", Access: Roles(models.RoleAdmin)},
		{Pattern: "/members/**", Access: Authenticated},
	}

	tests := []struct {
		name          string
		method, path  string
		role          models.Role
		authenticated bool
		want          int
	}{
		{"public anonymous", http.MethodGet, "/open/x", "", false, 0},
		{"public rule is method scoped", http.MethodPost, "/open/x", "", false, http.StatusUnauthorized},
		{"role rule anonymous", http.MethodGet, "/admin/users", "", false, http.StatusUnauthorized},
		{"role rule wrong role", http.MethodGet, "/admin/users", models.RoleUser, true, http.StatusForbidden},
		{"role rule right role", http.MethodGet, "/admin/users", models.RoleAdmin, true, 0},
		{"authenticated rule anonymous", http.MethodGet, "/members/x", "", false, http.StatusUnauthorized},
		{"authenticated rule any role", http.MethodGet, "/members/x", models.RoleUser, true, 0},
		{"no match anonymous", http.MethodGet, "/elsewhere", "", false, http.StatusUnauthorized},
		{"no match authenticated", http.MethodGet, "/elsewhere", models.RoleAdmin, true, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(rules, tt.method, tt.path, tt.role, tt.authenticated); got != tt.want {
				t.Fatalf("Decide = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecideFirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Pattern: "/api/users/me", Access: Authenticated},
		{Pattern: "/api/users/**", Access: Roles(models.RoleAdmin)},
	}
	if got := Decide(rules, http.MethodGet, "/api/users/me", models.RoleUser, true); got != 0 {
		t.Fatalf("users/me for USER = %d, want 0", got)
	}
	if got := Decide(rules, http.MethodGet, "/api/users/2", models.RoleUser, true); got != http.StatusForbidden {
		t.Fatalf("users/2 for USER = %d, want 403", got)
	}
}

type fakeAuth map[string]services.Actor

var errLookupDown = errors.New("connection refused")

func (f fakeAuth) Authenticate(_ context.Context, token string) (services.Actor, error) {
	if token == "db-down" {
		return services.Actor{}, errLookupDown
	}
	actor, ok := f[token]
	if !ok {
		return services.Actor{}, fmt.Errorf("%w: unknown token", services.ErrUnauthenticated)
	}
	return actor, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := fakeAuth{"good": {UserID: 7, Role: models.RoleAdmin}}

	router := gin.New()
	router.Use(AuthMiddleware(auth))
	router.Use(AccessRules([]Rule{
		{Pattern: "/whoami", Access: Authenticated},
		{Pattern: "/anon", Access: Public},
	}))
	whoami := func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID, "role": actor.Role})
	}
	router.GET("/whoami", whoami)
	router.GET("/anon", whoami)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"valid token", "/whoami", "Bearer good", http.StatusOK, `{"id":7,"role":"ADMIN"}`},
		{"scheme is case-insensitive", "/whoami", "bearer good", http.StatusOK, `{"id":7,"role":"ADMIN"}`},
		{"unknown token", "/whoami", "Bearer bad", http.StatusUnauthorized, ""},
		{"no header", "/whoami", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/whoami", "Basic good", http.StatusUnauthorized, ""},
		{"public route stays open with a bad token", "/anon", "Bearer bad", http.StatusOK, "anonymous"},
		{"lookup failure is a server error", "/whoami", "Bearer db-down", http.StatusInternalServerError, ""},
		{"lookup failure on a public route", "/anon", "Bearer db-down", http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Fatalf("body = %s, want %s", rec.Body.String(), tt.body)
			}
		})
	}
}
