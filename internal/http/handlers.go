package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// Services are the application services the API exposes
type Services struct {
	Products  *service.ProductService
	Carts     *service.CartService
	Orders    *service.OrderService
	Customers *service.CustomerService
	Addresses *service.AddressService
	Auth      *service.AuthService
}

type Server struct {
	engine *gin.Engine
	svc    Services
	log    *zap.Logger
}

func NewServer(svc Services, log *zap.Logger) *Server {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	s := &Server{engine: r, svc: svc, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/categories", s.listCategories)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)

		carts := v1.Group("/carts")
		carts.POST("", s.createCart)
		carts.GET(":id", s.getCart)
		carts.DELETE(":id", s.clearCart)
		carts.POST(":id/items", s.addCartItem)
		carts.PATCH(":id/items/:productId/:variantId", s.updateCartItem)
		carts.DELETE(":id/items/:productId/:variantId", s.removeCartItem)
		carts.PUT(":id/shipping-address", s.setShippingAddress)
		carts.PUT(":id/billing-address", s.setBillingAddress)
		carts.POST(":id/checkout", s.checkout)

		v1.GET("/orders/:id", s.requireCapability(domain.CapCheckout), s.getOrder)

		addresses := v1.Group("/addresses", s.requireCapability(domain.CapCheckout))
		addresses.GET("", s.listAddresses)
		addresses.POST("", s.saveAddress)

		auth := v1.Group("/auth")
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
		auth.GET("/session", s.requireCapability(domain.CapCheckout), s.currentSession)

		v1.GET("/me/orders", s.requireCapability(domain.CapCheckout), s.myOrders)

		admin := v1.Group("/admin")
		{
			catalog := admin.Group("/products", s.requireCapability(domain.CapManageCatalog))
			catalog.POST("", s.createProduct)
			catalog.PUT(":id", s.updateProduct)
			catalog.DELETE(":id", s.deleteProduct)

			orders := admin.Group("/orders", s.requireCapability(domain.CapManageOrders))
			orders.GET("", s.adminListOrders)
			orders.GET(":id", s.getOrder)
			orders.PATCH(":id/status", s.updateOrderStatus)
			orders.DELETE(":id", s.deleteOrder)

			customers := admin.Group("/customers", s.requireCapability(domain.CapViewCustomers))
			customers.GET("", s.listCustomers)
			customers.GET(":email", s.getCustomer)
		}
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseMoney(s string) (domain.Money, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	return domain.Money(v), err
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotEnoughStock),
		errors.Is(err, cart.ErrMaxStockReached):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
