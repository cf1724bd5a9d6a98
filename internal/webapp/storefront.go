package webapp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heladeria-storefront/internal/checkout"
	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/identity"
	"heladeria-storefront/internal/session"
)

// catalogSection groups the products of one category for display.
type catalogSection struct {
	Category domain.Category
	Products []domain.Product
}

func (h *handlers) storefrontPage(c *gin.Context) {
	sess := sessionFrom(c)
	tok := tokenFrom(c)
	ctx := c.Request.Context()

	msg, errMsg := flash(c)

	categories, err := h.deps.Catalog.Categories(ctx, tok.Raw)
	if err != nil {
		h.logger.WithError(err).Warn("load categories")
	}
	products, err := h.deps.Catalog.Products(ctx, tok.Raw, nil)
	if err != nil {
		h.logger.WithError(err).Error("load products")
		errMsg = "Error al cargar los productos. Verifica la conexión con el servidor."
	}

	amount, count := sess.Cart.Totals()
	c.HTML(http.StatusOK, "storefront.tmpl", gin.H{
		"Username":  sess.Username,
		"Sections":  groupByCategory(categories, products),
		"CartItems": sess.Cart.Items(),
		"CartEmpty": sess.Cart.Empty(),
		"CartTotal": amount,
		"CartCount": count,
		"Message":   msg,
		"Error":     errMsg,
	})
}

// groupByCategory buckets products under their categories in catalog order.
// Products with an unknown category land in a trailing "Otros" section.
func groupByCategory(categories []domain.Category, products []domain.Product) []catalogSection {
	sections := make([]catalogSection, 0, len(categories)+1)
	index := make(map[int64]int, len(categories))
	for _, cat := range categories {
		index[cat.ID] = len(sections)
		sections = append(sections, catalogSection{Category: cat})
	}

	var other catalogSection
	other.Category.Name = "Otros"
	for _, p := range products {
		if i, ok := index[p.CategoryID]; ok {
			sections[i].Products = append(sections[i].Products, p)
		} else {
			other.Products = append(other.Products, p)
		}
	}
	if len(other.Products) > 0 {
		sections = append(sections, other)
	}

	out := sections[:0]
	for _, s := range sections {
		if len(s.Products) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// cartAdd merges one unit of the posted product into the session cart. The
// product's display data rides along as rendered metadata; only the id ever
// reaches the backend, prices are re-derived there.
func (h *handlers) cartAdd(c *gin.Context) {
	sess := sessionFrom(c)

	id, err := strconv.ParseInt(c.PostForm("productId"), 10, 64)
	if err != nil {
		redirectWithError(c, "/", "Producto inválido")
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("precio"), 64)
	if err != nil {
		redirectWithError(c, "/", "Producto inválido")
		return
	}

	sess.Cart.Add(domain.Product{
		ID:    id,
		Name:  c.PostForm("nombre"),
		Price: price,
	})
	c.Redirect(http.StatusFound, "/")
}

// cartRemove drops a line by its product id.
func (h *handlers) cartRemove(c *gin.Context) {
	sess := sessionFrom(c)

	id, err := strconv.ParseInt(c.PostForm("productId"), 10, 64)
	if err != nil {
		redirectWithError(c, "/", "Producto inválido")
		return
	}

	sess.Cart.Remove(id)
	c.Redirect(http.StatusFound, "/")
}

// checkoutSubmit runs one checkout attempt through the workflow and
// reconciles the result into a redirect: confirmation banner on success,
// error banner with the cart intact on failure.
func (h *handlers) checkoutSubmit(c *gin.Context) {
	sess := sessionFrom(c)
	tok := tokenFrom(c)
	h.ensureRuntime(sess)

	if sess.Cart.Empty() {
		redirectWithError(c, "/", "El carrito está vacío. Agrega productos para poder ordenar.")
		return
	}

	order, err := sess.Workflow.Submit(c.Request.Context(), tok, sess.Cart, sess.Resolver)
	switch {
	case err == nil:
		sess.Workflow.Reset()
		redirectWithMessage(c, "/", fmt.Sprintf(
			"¡Pedido #%d realizado con éxito! Total: %s — Estado: %s. Gracias por tu compra.",
			order.ID, money(order.Total), order.Status.Label()))

	case errors.Is(err, domain.ErrNotAuthenticated):
		_ = h.deps.Sessions.Delete(c.Request.Context(), sess.ID)
		h.clearSessionCookie(c)
		redirectToLogin(c)

	case errors.Is(err, domain.ErrIdentityResolution):
		sess.Workflow.Reset()
		redirectWithError(c, "/",
			"No se pudo identificar tu cuenta. Cierra sesión, vuelve a iniciar sesión y contacta al administrador si el problema persiste.")

	case errors.Is(err, domain.ErrEmptyCart):
		sess.Workflow.Reset()
		redirectWithError(c, "/", "El carrito está vacío. Agrega productos para poder ordenar.")

	case errors.Is(err, checkout.ErrSubmissionInFlight):
		// Leave the workflow alone: the in-flight attempt owns it.
		redirectWithError(c, "/", "Tu pedido ya se está enviando. Espera la confirmación.")

	case errors.Is(err, checkout.ErrTimeout):
		sess.Workflow.Reset()
		redirectWithError(c, "/", "El servidor tardó demasiado en responder. Tu carrito sigue intacto, intenta de nuevo.")

	default:
		sess.Workflow.Reset()
		h.logger.WithError(err).Error("order submission failed")
		redirectWithError(c, "/", "Hubo un error al enviar el pedido: "+err.Error())
	}
}

// ensureRuntime lazily attaches the per-session resolver and workflow. A
// session revived from the durable store arrives without them. The init is
// once-guarded: concurrent first checkouts share one workflow instead of
// racing to install two.
func (h *handlers) ensureRuntime(sess *session.Session) {
	sess.EnsureRuntime(func() {
		sess.Resolver = identity.NewResolver(h.deps.Customers, h.logger)
		sess.Workflow = checkout.NewWorkflow(h.deps.Orders, h.opts.SubmitTimeout, h.logger)
	})
}
