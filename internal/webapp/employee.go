package webapp

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"heladeria-storefront/internal/domain"
)

// queueStats summarizes the order queue for the employee header cards.
type queueStats struct {
	Pending   int
	Preparing int
	Ready     int
	Today     int
}

func computeStats(orders []domain.Order, now time.Time) queueStats {
	var stats queueStats
	y, m, d := now.Date()
	for _, o := range orders {
		switch o.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusPreparing:
			stats.Preparing++
		case domain.StatusReady:
			stats.Ready++
		}
		oy, om, od := o.PlacedAt.Date()
		if oy == y && om == m && od == d {
			stats.Today++
		}
	}
	return stats
}

// orderRow pairs an order with its guided next step for rendering.
type orderRow struct {
	Order    domain.Order
	Next     domain.OrderStatus
	HasNext  bool
	NextName string
}

func buildRows(orders []domain.Order) []orderRow {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		row := orderRow{Order: o}
		if next, ok := o.Status.Next(); ok {
			row.Next = next
			row.HasNext = true
			row.NextName = actionLabel(next)
		}
		rows = append(rows, row)
	}
	return rows
}

func actionLabel(next domain.OrderStatus) string {
	switch next {
	case domain.StatusPreparing:
		return "Iniciar Preparación"
	case domain.StatusReady:
		return "Marcar Listo"
	case domain.StatusDelivered:
		return "Marcar Entregado"
	}
	return "Avanzar"
}

func (h *handlers) employeePage(c *gin.Context) {
	sess := sessionFrom(c)
	tok := tokenFrom(c)
	ctx := c.Request.Context()

	msg, errMsg := flash(c)

	statusFilter := domain.OrderStatus(c.Query("estado"))
	if statusFilter != "" && !statusFilter.Valid() {
		statusFilter = ""
	}

	orders, err := h.deps.Orders.Orders(ctx, tok.Raw, statusFilter)
	if err != nil {
		h.logger.WithError(err).Error("load orders")
		errMsg = "Error al cargar pedidos"
	}

	products, err := h.deps.Catalog.Products(ctx, tok.Raw, nil)
	if err != nil {
		h.logger.WithError(err).Warn("load products")
	}
	categories, err := h.deps.Catalog.Categories(ctx, tok.Raw)
	if err != nil {
		h.logger.WithError(err).Warn("load categories")
	}

	c.HTML(http.StatusOK, "empleado.tmpl", gin.H{
		"Username":      sess.Username,
		"Rows":          buildRows(orders),
		"Stats":         computeStats(orders, time.Now()),
		"StatusFilter":  statusFilter,
		"AllStatuses":   domain.AllStatuses(),
		"Products":      products,
		"CategoryNames": categoryNames(categories),
		"Message":       msg,
		"Error":         errMsg,
	})
}

// orderAdvance applies the guided single-next-step transition. The target
// status rides in the form, produced by the same Next() the page rendered
// the button from.
func (h *handlers) orderAdvance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		redirectWithError(c, "/empleado", "Pedido inválido")
		return
	}
	status := domain.OrderStatus(c.PostForm("estado"))
	if !status.Valid() {
		redirectWithError(c, "/empleado", "Estado inválido")
		return
	}
	if _, err := h.deps.Orders.UpdateOrderStatus(c.Request.Context(), tokenFrom(c).Raw, id, status); err != nil {
		h.logger.WithError(err).Error("advance order")
		redirectWithError(c, "/empleado", "Error al actualizar el estado")
		return
	}
	redirectWithMessage(c, "/empleado", "Estado actualizado exitosamente")
}

// orderDetailPage shows one order with its line items, shared by both
// back-office views.
func (h *handlers) orderDetailPage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		redirectWithError(c, "/empleado", "Pedido inválido")
		return
	}

	order, err := h.deps.Orders.Order(c.Request.Context(), tokenFrom(c).Raw, id)
	if err != nil {
		h.logger.WithError(err).Error("load order detail")
		redirectWithError(c, "/empleado", "Error al obtener detalle del pedido")
		return
	}

	customerName := ""
	if order.CustomerID != 0 {
		if customer, err := h.deps.Customers.Customer(c.Request.Context(), tokenFrom(c).Raw, order.CustomerID); err == nil && customer != nil {
			customerName = strings.TrimSpace(customer.FirstName + " " + customer.LastName)
		}
	}

	back := "/empleado"
	if tokenFrom(c).Role() == domain.RoleAdmin {
		back = "/admin"
	}

	c.HTML(http.StatusOK, "pedido.tmpl", gin.H{
		"Username":     sessionFrom(c).Username,
		"Order":        order,
		"CustomerName": customerName,
		"Back":         back,
	})
}
