package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"heladeria-storefront/internal/domain"
)

// Token is a decoded session JWT. Claims are read without signature
// verification: the backend signed the token and this client only needs to
// inspect it, the same trust model as the browser it replaces.
type Token struct {
	Raw       string
	Subject   string
	ExpiresAt time.Time
	claims    jwt.MapClaims
}

// Numeric identifier claims tried in order before falling back to the
// subject. The backend's token payload shape varies across deployments.
var idClaims = []string{"userId", "id", "clienteId"}

// Parse decodes the claim set of a compact JWT. It fails on malformed input
// but accepts any signature.
func Parse(raw string) (*Token, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, "decode token")
	}

	t := &Token{Raw: raw, claims: claims}
	if sub, ok := claims["sub"].(string); ok {
		t.Subject = sub
	}
	if exp, ok := numericClaim(claims["exp"]); ok {
		t.ExpiresAt = time.Unix(exp, 0)
	}
	return t, nil
}

// Expired reports whether the token's exp claim has passed. A token without
// an exp claim is treated as expired: it can never be proven fresh.
func (t *Token) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.After(t.ExpiresAt)
}

// NumericID extracts a numeric customer identifier embedded directly in the
// claims, trying each known claim name in order.
func (t *Token) NumericID() (int64, bool) {
	for _, name := range idClaims {
		if id, ok := numericClaim(t.claims[name]); ok {
			return id, true
		}
	}
	return 0, false
}

// Email returns the subject claim when it holds an email address.
func (t *Token) Email() (string, bool) {
	if strings.Contains(t.Subject, "@") {
		return t.Subject, true
	}
	return "", false
}

// Role derives the access level from the token. The backend emits Spring
// Security authorities like "ROLE_ADMIN"; older deployments use a bare "rol"
// claim. Tokens carrying neither are customers.
func (t *Token) Role() domain.Role {
	authority := ""
	if auths, ok := t.claims["authorities"].([]interface{}); ok && len(auths) > 0 {
		switch first := auths[0].(type) {
		case map[string]interface{}:
			authority, _ = first["authority"].(string)
		case string:
			authority = first
		}
	}
	if authority == "" {
		authority, _ = t.claims["rol"].(string)
	}
	if authority == "" {
		return domain.RoleCustomer
	}
	return domain.Role(strings.TrimPrefix(authority, "ROLE_"))
}

func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
