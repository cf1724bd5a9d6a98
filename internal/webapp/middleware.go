package webapp

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/session"
	"heladeria-storefront/internal/token"
)

const sessionCookie = "heladeria_session"

const (
	ctxSession = "webapp.session"
	ctxToken   = "webapp.token"
)

// requireSession loads the cookie-keyed session and its decoded token, or
// forces navigation to the login page. An expired token kills the session:
// the user must log in again, the cart is gone with the session.
func (h *handlers) requireSession(c *gin.Context) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		redirectToLogin(c)
		return
	}

	sess, err := h.deps.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.clearSessionCookie(c)
		redirectToLogin(c)
		return
	}

	tok, err := token.Parse(sess.RawToken)
	if err != nil || tok.Expired(time.Now()) {
		_ = h.deps.Sessions.Delete(c.Request.Context(), sess.ID)
		h.clearSessionCookie(c)
		redirectToLogin(c)
		return
	}

	c.Set(ctxSession, sess)
	c.Set(ctxToken, tok)
	c.Next()
}

// requireRole gates back-office routes. Customers landing on a dashboard get
// sent back to the storefront with an explanation, mirroring the original
// dashboards' permission alerts.
func (h *handlers) requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := tokenFrom(c).Role()
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		redirectWithError(c, "/", "No tienes permisos para acceder a esta sección")
		c.Abort()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(ctxSession).(*session.Session)
}

func tokenFrom(c *gin.Context) *token.Token {
	return c.MustGet(ctxToken).(*token.Token)
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

func (h *handlers) setSessionCookie(c *gin.Context, sess *session.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetCookie(sessionCookie, sess.ID, maxAge, "/", "", h.opts.CookieSecure, true)
}

func (h *handlers) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", h.opts.CookieSecure, true)
}
