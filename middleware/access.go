package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
)

// Access is what a rule requires of the caller
type Access struct {
	public bool
	roles  []models.Role
}

var (
	// Public lets anyone through
	Public = Access{public: true}
	// Authenticated requires any valid identity
	Authenticated = Access{}
)

// Roles requires an identity holding one of roles
func Roles(roles ...models.Role) Access {
	return Access{roles: roles}
}

// Rule gates requests whose method and path match. An empty Method matches
// any method. Pattern segments may be "*" (one segment) or "**" (any number
// of segments, including none).
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// Match reports whether the rule applies to method and path
func (r Rule) Match(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	return matchSegments(splitPath(r.Pattern), splitPath(path))
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, path []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(path); i++ {
				if matchSegments(rest, path[i:]) {
					return true
				}
			}
			return false
		}
		if len(path) == 0 || (head != "*" && head != path[0]) {
			return false
		}
		pattern, path = pattern[1:], path[1:]
	}
	return len(path) == 0
}

// Decide evaluates rules in order against the caller. The first matching
// rule wins; when none matches the request is denied. It returns 0 when the
// request may proceed, otherwise the status to abort with.
func Decide(rules []Rule, method, path string, role models.Role, authenticated bool) int {
	for _, rule := range rules {
		if !rule.Match(method, path) {
			continue
		}
		switch {
		case rule.Access.public:
			return 0
		case !authenticated:
			return http.StatusUnauthorized
		case len(rule.Access.roles) == 0:
			return 0
		case hasRole(rule.Access.roles, role):
			return 0
		default:
			return http.StatusForbidden
		}
	}
	if !authenticated {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AccessRules enforces rules with the identity set by AuthMiddleware
func AccessRules(rules []Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, authenticated := CurrentActor(c)
		status := Decide(rules, c.Request.Method, c.Request.URL.Path, actor.Role, authenticated)
		switch status {
		case 0:
			c.Next()
		case http.StatusUnauthorized:
			c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, "authentication required"))
		default:
			c.AbortWithStatusJSON(status, dto.NewErrorResponse(status, "insufficient permissions"))
		}
	}
}
