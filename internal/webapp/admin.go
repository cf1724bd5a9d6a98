package webapp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"heladeria-storefront/internal/domain"
)

func (h *handlers) adminPage(c *gin.Context) {
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
		errMsg = "Error al cargar productos"
	}

	search := strings.TrimSpace(c.Query("q"))
	var categoryFilter int64
	if raw := c.Query("categoriaId"); raw != "" {
		categoryFilter, _ = strconv.ParseInt(raw, 10, 64)
	}
	products = filterProducts(products, search, categoryFilter)

	statusFilter := domain.OrderStatus(c.Query("estado"))
	if statusFilter != "" && !statusFilter.Valid() {
		statusFilter = ""
	}
	orders, err := h.deps.Orders.Orders(ctx, tok.Raw, statusFilter)
	if err != nil {
		h.logger.WithError(err).Error("load orders")
		errMsg = "Error al cargar pedidos"
	}

	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"Username":       sess.Username,
		"Products":       products,
		"Categories":     categories,
		"CategoryNames":  categoryNames(categories),
		"Orders":         orders,
		"Search":         search,
		"CategoryFilter": categoryFilter,
		"StatusFilter":   statusFilter,
		"AllStatuses":    domain.AllStatuses(),
		"Message":        msg,
		"Error":          errMsg,
	})
}

func filterProducts(products []domain.Product, search string, categoryID int64) []domain.Product {
	if search == "" && categoryID == 0 {
		return products
	}
	needle := strings.ToLower(search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func categoryNames(categories []domain.Category) map[int64]string {
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names
}

func (h *handlers) productCreate(c *gin.Context) {
	in, err := productInputFromForm(c)
	if err != nil {
		redirectWithError(c, "/admin", "Datos del producto inválidos")
		return
	}
	if _, err := h.deps.Catalog.CreateProduct(c.Request.Context(), tokenFrom(c).Raw, in); err != nil {
		h.logger.WithError(err).Error("create product")
		redirectWithError(c, "/admin", "Error al guardar el producto")
		return
	}
	redirectWithMessage(c, "/admin", "Producto creado exitosamente")
}

func (h *handlers) productUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		redirectWithError(c, "/admin", "Producto inválido")
		return
	}
	in, err := productInputFromForm(c)
	if err != nil {
		redirectWithError(c, "/admin", "Datos del producto inválidos")
		return
	}
	if _, err := h.deps.Catalog.UpdateProduct(c.Request.Context(), tokenFrom(c).Raw, id, in); err != nil {
		h.logger.WithError(err).Error("update product")
		redirectWithError(c, "/admin", "Error al guardar el producto")
		return
	}
	redirectWithMessage(c, "/admin", "Producto actualizado exitosamente")
}

func (h *handlers) productDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		redirectWithError(c, "/admin", "Producto inválido")
		return
	}
	if err := h.deps.Catalog.DeleteProduct(c.Request.Context(), tokenFrom(c).Raw, id); err != nil {
		h.logger.WithError(err).Error("delete product")
		redirectWithError(c, "/admin", "Error al eliminar el producto")
		return
	}
	redirectWithMessage(c, "/admin", "Producto eliminado exitosamente")
}

func (h *handlers) categoryCreate(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("nombre"))
	if name == "" {
		redirectWithError(c, "/admin", "El nombre de la categoría es obligatorio")
		return
	}
	if _, err := h.deps.Catalog.CreateCategory(c.Request.Context(), tokenFrom(c).Raw, name); err != nil {
		h.logger.WithError(err).Error("create category")
		redirectWithError(c, "/admin", "Error al crear la categoría")
		return
	}
	redirectWithMessage(c, "/admin", "Categoría creada exitosamente")
}

// orderStatusUpdate is the admin's free-choice transition: any valid status
// can be selected, the progression is not enforced.
func (h *handlers) orderStatusUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		redirectWithError(c, "/admin", "Pedido inválido")
		return
	}
	status := domain.OrderStatus(c.PostForm("estado"))
	if !status.Valid() {
		redirectWithError(c, "/admin", "Estado inválido")
		return
	}
	if _, err := h.deps.Orders.UpdateOrderStatus(c.Request.Context(), tokenFrom(c).Raw, id, status); err != nil {
		h.logger.WithError(err).Error("update order status")
		redirectWithError(c, "/admin", "Error al actualizar el estado")
		return
	}
	redirectWithMessage(c, "/admin", "Estado actualizado exitosamente")
}

func productInputFromForm(c *gin.Context) (domain.ProductInput, error) {
	price, err := strconv.ParseFloat(c.PostForm("precio"), 64)
	if err != nil {
		return domain.ProductInput{}, err
	}
	categoryID, err := strconv.ParseInt(c.PostForm("categoriaId"), 10, 64)
	if err != nil {
		return domain.ProductInput{}, err
	}
	return domain.ProductInput{
		Name:        strings.TrimSpace(c.PostForm("nombre")),
		Price:       price,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(c.PostForm("descripcion")),
		ImageURL:    strings.TrimSpace(c.PostForm("imagenUrl")),
	}, nil
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
