package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/casbin/casbin/v2/util"
	"github.com/gin-gonic/gin"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated means the route needs a valid token and none was
	// presented. Maps to 401.
	DenyUnauthenticated
	// DenyForbidden means the subject is authenticated but its role is not
	// in the matched rule's allowed set. Maps to 403.
	DenyForbidden
)

// AccessMatrix evaluates the static route authorization table. Rules are
// checked in listed order and the first pattern/method match wins; rules
// and patterns are immutable after startup, so evaluation is pure and safe
// for unsynchronized concurrent use.
type AccessMatrix struct {
	rules []domain.AccessRule

	// allowUnmatchedAuthenticated controls routes no rule covers: require a
	// token but accept any role. When false, unmatched routes are denied
	// outright.
	allowUnmatchedAuthenticated bool
}

// NewAccessMatrix creates the matrix from the configured rule table.
func NewAccessMatrix(rules []domain.AccessRule, allowUnmatchedAuthenticated bool) *AccessMatrix {
	return &AccessMatrix{
		rules:                       rules,
		allowUnmatchedAuthenticated: allowUnmatchedAuthenticated,
	}
}

// Decide authorizes a (path, method) against the subject's role.
// authenticated=false with role "" models an anonymous request.
func (m *AccessMatrix) Decide(path, method, role string, authenticated bool) Decision {
	rule, matched := m.match(path, method)

	if matched && rule.Public {
		return Allow
	}

	if !authenticated {
		return DenyUnauthenticated
	}

	if !matched {
		if m.allowUnmatchedAuthenticated {
			return Allow
		}
		return DenyForbidden
	}

	if rule.AllowsRole(role) {
		return Allow
	}
	return DenyForbidden
}

// match returns the first rule whose pattern and method cover the request.
func (m *AccessMatrix) match(path, method string) (*domain.AccessRule, bool) {
	for i := range m.rules {
		rule := &m.rules[i]
		if !util.KeyMatch2(path, rule.Pattern) {
			continue
		}
		for _, pm := range rule.Methods {
			if methodMatches(method, pm) {
				return rule, true
			}
		}
	}
	return nil, false
}

// methodMatches checks a request method against a policy method pattern:
// exact, "*", or a regex alternation like (GET|POST).
func methodMatches(requestMethod, policyMethod string) bool {
	if requestMethod == policyMethod || policyMethod == "*" {
		return true
	}
	if strings.HasPrefix(policyMethod, "(") && strings.HasSuffix(policyMethod, ")") {
		pattern := strings.Trim(policyMethod, "()")
		regex, err := regexp.Compile("^(" + pattern + ")$")
		if err != nil {
			return false
		}
		return regex.MatchString(requestMethod)
	}
	return false
}

// Enforce returns the authorization middleware. It runs after the token
// filter and short-circuits the pipeline on a deny.
func (m *AccessMatrix) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		_, role, authenticated := Subject(c)

		switch m.Decide(c.Request.URL.Path, c.Request.Method, role, authenticated) {
		case Allow:
			c.Next()

		case DenyUnauthenticated:
			c.JSON(http.StatusUnauthorized, gin.H{"error": rejectionMessage(c)})
			c.Abort()

		case DenyForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
		}
	})
}

// rejectionMessage maps the filter's recorded failure to a response message.
func rejectionMessage(c *gin.Context) string {
	v, ok := c.Get(CtxAuthError)
	if !ok {
		return "Authorization required"
	}
	switch v {
	case domain.ErrTokenMissing:
		return "Authorization required"
	case domain.ErrTokenExpired:
		return "Token expired"
	default:
		return "Invalid token"
	}
}
