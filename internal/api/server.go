package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

// Server связывает REST-маршруты витрины с репозиториями и сервисом аутентификации.
type Server struct {
	orders   domain.OrderRepository
	users    domain.UserRepository
	products domain.ProductRepository
	auth     auth.Service
	producer *kafka.Producer // опциональный producer событий заказов
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
	router   *gin.Engine
}

// NewServer создаёт HTTP-сервер и регистрирует все маршруты.
// producer может быть nil, тогда события заказов не публикуются.
func NewServer(
	orders domain.OrderRepository,
	users domain.UserRepository,
	products domain.ProductRepository,
	authService auth.Service,
	producer *kafka.Producer,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "api")
	}

	s := &Server{
		orders:   orders,
		users:    users,
		products: products,
		auth:     authService,
		producer: producer,
		metrics:  orderMetrics,
		logger:   logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.observe())
	s.registerRoutes(router)
	s.router = router

	return s
}

// Router возвращает готовый gin-роутер для http.Server.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Открытые маршруты.
	api.POST("/users", s.createUser)
	api.POST("/users/signin", s.signIn)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/products/category/:categoryName", s.listProductsByCategory)
	api.GET("/top_products", s.topProducts)

	// Всё остальное за токеном.
	guarded := api.Group("", s.requireAuth())
	guarded.GET("/users", s.listUsers)
	guarded.GET("/users/:id", s.getUser)
	guarded.DELETE("/users/:id", s.deleteUser)

	guarded.POST("/products", s.createProduct)
	guarded.DELETE("/products/:id", s.deleteProduct)

	guarded.GET("/orders", s.listOrders)
	guarded.GET("/orders/:id", s.getOrder)
	guarded.POST("/orders", s.createOrder)
	guarded.DELETE("/orders/:id", s.deleteOrder)
	guarded.GET("/user_current_order/:userId", s.userCurrentOrder)
	guarded.GET("/user_completed_orders/:userId", s.userCompletedOrders)
	guarded.POST("/orders/:id/products", s.addOrderLine)
	guarded.DELETE("/orders/products/:lineId", s.removeOrderLine)
}
