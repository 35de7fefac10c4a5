package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

// @Summary Saved addresses of the signed-in customer
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Address
// @Failure 401 {object} map[string]string
// @Router /addresses [get]
func (s *Server) listAddresses(c *gin.Context) {
	list, err := s.svc.Addresses.List(c, sessionFrom(c).Email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Save an address for the signed-in customer
// @Description Identical addresses are stored once.
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body domain.Address true "Address"
// @Success 201 {object} map[string]bool
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /addresses [post]
func (s *Server) saveAddress(c *gin.Context) {
	var a domain.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	added, err := s.svc.Addresses.Save(c, sessionFrom(c).Email, a)
	if err != nil {
		s.fail(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"added": added})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} domain.Session
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, err := s.svc.Auth.Login(c, req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary Sign out
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	if err := s.svc.Auth.Logout(c, bearerToken(c)); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Session
// @Failure 401 {object} map[string]string
// @Router /auth/session [get]
func (s *Server) currentSession(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c))
}

// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body domain.Product true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /admin/products [post]
func (s *Server) createProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	created, err := s.svc.Products.Create(c, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Replace product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param input body domain.Product true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p.ID = c.Param("id")
	updated, err := s.svc.Products.Update(c, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete product
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.svc.Products.Delete(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
