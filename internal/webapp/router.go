package webapp

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"heladeria-storefront/internal/domain"
)

type handlers struct {
	logger *logrus.Logger
	deps   Deps
	opts   Options
}

// buildRouter wires the storefront and back-office routes.
func buildRouter(logger *logrus.Logger, deps Deps, opts Options) (*gin.Engine, error) {
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = 15 * time.Second
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 48 * time.Hour
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(opts.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.AllowedOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	h := &handlers{logger: logger, deps: deps, opts: opts}

	router.GET("/healthz", healthHandler)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.loginSubmit)
	router.POST("/register", h.registerSubmit)
	router.POST("/logout", h.logout)

	authed := router.Group("/", h.requireSession)
	authed.GET("", h.storefrontPage)
	authed.POST("cart/add", h.cartAdd)
	authed.POST("cart/remove", h.cartRemove)
	authed.POST("checkout", h.checkoutSubmit)

	staff := authed.Group("", h.requireRole(domain.RoleEmployee, domain.RoleAdmin))
	staff.GET("empleado", h.employeePage)
	staff.POST("empleado/pedidos/:id/avanzar", h.orderAdvance)
	staff.GET("pedidos/:id", h.orderDetailPage)

	admin := authed.Group("admin", h.requireRole(domain.RoleAdmin))
	admin.GET("", h.adminPage)
	admin.POST("productos", h.productCreate)
	admin.POST("productos/:id", h.productUpdate)
	admin.POST("productos/:id/eliminar", h.productDelete)
	admin.POST("categorias", h.categoryCreate)
	admin.POST("pedidos/:id/estado", h.orderStatusUpdate)

	return router, nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
