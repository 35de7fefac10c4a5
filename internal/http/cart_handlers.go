package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/service"
)

// @Summary Create an empty cart
// @Tags cart
// @Produce json
// @Success 201 {object} domain.Cart
// @Router /carts [post]
func (s *Server) createCart(c *gin.Context) {
	ct, err := s.svc.Carts.Create(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

// @Summary Get cart
// @Tags cart
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} map[string]string
// @Router /carts/{id} [get]
func (s *Server) getCart(c *gin.Context) {
	ct, err := s.svc.Carts.Get(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

// @Summary Clear cart
// @Tags cart
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} domain.Cart
// @Router /carts/{id} [delete]
func (s *Server) clearCart(c *gin.Context) {
	ct, err := s.svc.Carts.Dispatch(c, c.Param("id"), cart.ClearCart{})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

type addItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// @Summary Add item to cart
// @Description Adding an existing product/variant pair increases its quantity.
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param input body addItemReq true "Item"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /carts/{id}/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ct, err := s.svc.Carts.AddItem(c, c.Param("id"), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

// @Summary Change item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param productId path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Param input body updateQuantityReq true "Quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /carts/{id}/items/{productId}/{variantId} [patch]
func (s *Server) updateCartItem(c *gin.Context) {
	var req updateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ct, err := s.svc.Carts.UpdateQuantity(c, c.Param("id"), c.Param("productId"), c.Param("variantId"), req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Param id path string true "Cart ID"
// @Param productId path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} domain.Cart
// @Router /carts/{id}/items/{productId}/{variantId} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	ct, err := s.svc.Carts.Dispatch(c, c.Param("id"), cart.RemoveItem{
		ProductID: c.Param("productId"),
		VariantID: c.Param("variantId"),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

// @Summary Set shipping address
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param input body domain.Address true "Address"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Router /carts/{id}/shipping-address [put]
func (s *Server) setShippingAddress(c *gin.Context) {
	var a domain.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ct, err := s.svc.Carts.SetShippingAddress(c, c.Param("id"), a)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

// @Summary Set billing address
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param input body domain.Address true "Address"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Router /carts/{id}/billing-address [put]
func (s *Server) setBillingAddress(c *gin.Context) {
	var a domain.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ct, err := s.svc.Carts.SetBillingAddress(c, c.Param("id"), a)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

// @Summary Place order from cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param input body service.CheckoutRequest true "Checkout form"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /carts/{id}/checkout [post]
func (s *Server) checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := s.svc.Orders.PlaceOrder(c, c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": id})
}
