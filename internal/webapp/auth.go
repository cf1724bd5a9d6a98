package webapp

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"heladeria-storefront/internal/api"
	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/token"
)

func landingFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleEmployee:
		return "/empleado"
	}
	return "/"
}

// loginPage renders the login/registration form. A visitor who already has a
// live session is sent straight to their landing page.
func (h *handlers) loginPage(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, err := h.deps.Sessions.Get(c.Request.Context(), id); err == nil {
			if tok, err := token.Parse(sess.RawToken); err == nil && !tok.Expired(time.Now()) {
				c.Redirect(http.StatusFound, landingFor(tok.Role()))
				return
			}
		}
	}

	msg, errMsg := flash(c)
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Message": msg, "Error": errMsg})
}

func (h *handlers) loginSubmit(c *gin.Context) {
	creds := domain.Credentials{
		Username: c.PostForm("usuario"),
		Password: c.PostForm("contrasena"),
	}

	access, err := h.deps.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) || errors.Is(err, domain.ErrNotFound) {
			redirectWithError(c, "/login", "Usuario o contraseña incorrectos")
			return
		}
		redirectWithError(c, "/login", "Error de conexión con el servidor")
		return
	}

	tok, err := token.Parse(access)
	if err != nil || tok.Expired(time.Now()) {
		h.logger.WithError(err).Warn("backend issued an unusable token")
		redirectWithError(c, "/login", "Error al verificar tu sesión. Por favor, inicia sesión nuevamente.")
		return
	}

	expiresAt := tok.ExpiresAt
	if max := time.Now().Add(h.opts.SessionTTL); expiresAt.After(max) {
		expiresAt = max
	}

	sess, err := h.deps.Sessions.Create(c.Request.Context(), access, creds.Username, expiresAt)
	if err != nil {
		h.logger.WithError(err).Error("create session")
		redirectWithError(c, "/login", "Error al iniciar sesión. Intenta de nuevo.")
		return
	}

	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, landingFor(tok.Role()))
}

func (h *handlers) registerSubmit(c *gin.Context) {
	in := domain.RegisterInput{
		FirstName: c.PostForm("nombre"),
		LastName:  c.PostForm("apellido"),
		Phone:     c.PostForm("telefono"),
		Address:   c.PostForm("direccion"),
		Username:  c.PostForm("usuario"),
		Password:  c.PostForm("contrasena"),
	}

	if err := h.deps.Auth.Register(c.Request.Context(), in); err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			redirectWithError(c, "/login", "Error en el registro. Verifica que el email no esté registrado.")
			return
		}
		redirectWithError(c, "/login", "Error de conexión con el servidor")
		return
	}

	redirectWithMessage(c, "/login", "¡Registro exitoso! Ahora puedes iniciar sesión.")
}

// logout kills the session regardless of its state; it is deliberately not
// behind requireSession so a dead cookie can still be cleared.
func (h *handlers) logout(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		_ = h.deps.Sessions.Delete(c.Request.Context(), id)
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}
