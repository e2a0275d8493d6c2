package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/config"
	"github.com/pinbox-kr/pinbox-backend/internal/app/controller"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	catalogController      *controller.CatalogController
	optionController       *controller.OptionController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	walletController       *controller.WalletController
	codeController         *controller.CodeController
	uploadController       *controller.UploadController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	catalogController *controller.CatalogController,
	optionController *controller.OptionController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	walletController *controller.WalletController,
	codeController *controller.CodeController,
	uploadController *controller.UploadController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		catalogController:      catalogController,
		optionController:       optionController,
		cartController:         cartController,
		orderController:        orderController,
		walletController:       walletController,
		codeController:         codeController,
		uploadController:       uploadController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PINBOX API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			// 비로그인 사용자도 카탈로그는 볼 수 있다
			products.GET("", r.authMiddleware.OptionalAuthenticate(), r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.GET("/slug/:slug", r.productController.GetProductBySlug)
			products.GET("/:id/catalog", r.catalogController.GetCatalog)
			products.POST("/:id/validate", r.catalogController.ValidateSelections)
			products.POST("/:id/quote", r.catalogController.QuotePrice)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:id", r.cartController.RemoveCartItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("/checkout", r.orderController.Checkout)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
			orders.GET("/items/:id/codes", r.orderController.GetItemCodes)
		}

		wallet := v1.Group("/wallet")
		wallet.Use(r.authMiddleware.Authenticate())
		{
			wallet.GET("/balance", r.walletController.GetBalance)
			wallet.GET("/transactions", r.walletController.GetTransactions)
			wallet.POST("/topups", r.walletController.SubmitTopUp)
			wallet.GET("/topups", r.walletController.GetMyTopUps)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("/ws", r.notificationController.WebSocketHandler)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.POST("/option-groups", r.optionController.CreateGroup)
			admin.GET("/option-groups", r.optionController.GetGroups)
			admin.GET("/option-groups/:id", r.optionController.GetGroupByID)
			admin.PUT("/option-groups/:id", r.optionController.UpdateGroup)
			admin.DELETE("/option-groups/:id", r.optionController.DeleteGroup)
			admin.POST("/option-groups/:id/options", r.optionController.AddOption)
			admin.PUT("/options/:id", r.optionController.UpdateOption)
			admin.DELETE("/options/:id", r.optionController.DeleteOption)

			admin.POST("/products/:id/option-groups", r.optionController.AssignGroup)
			admin.PUT("/products/:id/option-groups/:groupID", r.optionController.UpdateAssignment)
			admin.DELETE("/products/:id/option-groups/:groupID", r.optionController.UnassignGroup)

			admin.GET("/products/:id/combinations", r.optionController.GetCombinations)
			admin.POST("/products/:id/combinations/materialize", r.optionController.MaterializeCombinations)
			admin.PUT("/combinations/:id", r.optionController.UpdateCombination)
			admin.DELETE("/combinations/:id", r.optionController.DeleteCombination)

			admin.POST("/products/:id/codes", r.codeController.ImportCodes)
			admin.GET("/products/:id/codes/count", r.codeController.CountAvailable)
			admin.DELETE("/codes/:id", r.codeController.RevokeCode)

			admin.GET("/orders", r.orderController.GetOrdersByStatus)
			admin.POST("/orders/items/:id/deliver", r.orderController.DeliverItem)

			admin.GET("/topups", r.walletController.GetTopUpsByStatus)
			admin.POST("/topups/:id/approve", r.walletController.ApproveTopUp)
			admin.POST("/topups/:id/reject", r.walletController.RejectTopUp)

			admin.GET("/notifications/online/:id", r.notificationController.IsOnline)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
