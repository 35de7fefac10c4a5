package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// @Summary Get order by id
// @Description Customers only see their own orders.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.svc.Orders.GetOrderFor(c, c.Param("id"), *sessionFrom(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Orders placed with the signed-in email
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Order
// @Failure 401 {object} map[string]string
// @Router /me/orders [get]
func (s *Server) myOrders(c *gin.Context) {
	sess := sessionFrom(c)
	list, err := s.svc.Orders.ListOrders(c, repository.OrderFilter{Email: sess.Email})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List orders, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Processing|Shipped|Delivered|Cancelled"
// @Param email query string false "Customer email"
// @Success 200 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /admin/orders [get]
func (s *Server) adminListOrders(c *gin.Context) {
	f := repository.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Email:  c.Query("email"),
	}
	list, err := s.svc.Orders.ListOrders(c, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type updateStatusReq struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// @Summary Change order status
// @Description Delivered and cancelled orders cannot change status.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param input body updateStatusReq true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.svc.Orders.UpdateStatus(c, c.Param("id"), req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Delete order
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id} [delete]
func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.svc.Orders.DeleteOrder(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List customers by total spent
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Customer
// @Router /admin/customers [get]
func (s *Server) listCustomers(c *gin.Context) {
	list, err := s.svc.Customers.List(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Customer ledger entry
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email path string true "Customer email"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} map[string]string
// @Router /admin/customers/{email} [get]
func (s *Server) getCustomer(c *gin.Context) {
	cust, err := s.svc.Customers.GetByEmail(c, c.Param("email"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}
