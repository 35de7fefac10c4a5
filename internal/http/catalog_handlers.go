package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/repository"
)

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Products.Categories())
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category slug"
// @Param featured query bool false "Featured only"
// @Param in_stock query bool false "Stock flag"
// @Param min_price query int false "Min price (paise)"
// @Param max_price query int false "Max price (paise)"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f repository.ProductFilter
	f.NameSubstring = c.Query("q")
	f.Category = c.Query("category")
	if v := c.Query("featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Featured = &b
		}
	}
	if v := c.Query("in_stock"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.InStock = &b
		}
	}
	if v := c.Query("min_price"); v != "" {
		if x, err := parseMoney(v); err == nil {
			f.MinPrice = &x
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := parseMoney(v); err == nil {
			f.MaxPrice = &x
		}
	}
	list, err := s.svc.Products.List(c, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.svc.Products.GetByID(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
