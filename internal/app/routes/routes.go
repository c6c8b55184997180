package routes

import (
	"time"

	_ "gated-community-http-service/docs"
	"gated-community-http-service/internal/app/controllers"
	"gated-community-http-service/internal/app/middleware"
	"gated-community-http-service/internal/domain/services/container"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册住户端路由
	registerUserRoutes(api, container)
	// 注册管理端路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))
	healthGroup.GET("/cache-stats", controllers.HandleHealthFunc(container, "cacheStats"))

	// 认证路由，单独收紧限流防止暴力破解
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10)) // 每秒5个请求，最多突发10个
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
}

// registerUserRoutes 注册已登录用户可访问的路由
func registerUserRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateUser())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 当前用户路由
	auth.GET("/users/me", controllers.HandleUserFunc(container, "getCurrentUser"))
	auth.PUT("/users/password", controllers.HandleUserFunc(container, "changePassword"))

	// 通知路由（住户端）
	notificationGroup := auth.Group("/notifications")
	notificationGroup.GET("/my", controllers.HandleNotificationFunc(container, "getMyFeed"))
	notificationGroup.GET("/:id", controllers.HandleNotificationFunc(container, "getNotification"))
	notificationGroup.PUT("/:id/read", controllers.HandleNotificationFunc(container, "markRead"))

	// 缴费路由（住户端）
	auth.GET("/payments/my", controllers.HandlePaymentFunc(container, "getMyPayments"))

	// 报修路由（住户端）
	auth.GET("/maintenance/my", controllers.HandleMaintenanceFunc(container, "getMyRequests"))
	auth.POST("/maintenance", controllers.HandleMaintenanceFunc(container, "createRequest"))
}

// registerAdminRoutes 注册仅管理员可访问的路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加管理员认证中间件
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateSystemAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	admin.Use(middleware.IPRateLimiter(30, 50))

	// 通知路由（管理端）
	notificationGroup := admin.Group("/notifications")
	notificationGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleNotificationFunc(container, "getNotifications"))
	notificationGroup.POST("", controllers.HandleNotificationFunc(container, "createNotification"))

	// 街道路由
	streetGroup := admin.Group("/streets")
	streetGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleStreetFunc(container, "getStreets"))
	streetGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleStreetFunc(container, "getStreet"))
	streetGroup.POST("", controllers.HandleStreetFunc(container, "createStreet"))
	streetGroup.PUT("/:id", controllers.HandleStreetFunc(container, "updateStreet"))
	streetGroup.DELETE("/:id", controllers.HandleStreetFunc(container, "deleteStreet"))
	streetGroup.GET("/:id/plots", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleStreetFunc(container, "getStreetPlots"))

	// 地块路由
	plotGroup := admin.Group("/plots")
	plotGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandlePlotFunc(container, "getPlots"))
	plotGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandlePlotFunc(container, "getPlot"))
	plotGroup.POST("", controllers.HandlePlotFunc(container, "createPlot"))
	plotGroup.PUT("/:id", controllers.HandlePlotFunc(container, "updatePlot"))
	plotGroup.DELETE("/:id", controllers.HandlePlotFunc(container, "deletePlot"))
	plotGroup.GET("/:id/residents", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandlePlotFunc(container, "getPlotResidents"))

	// 住户路由
	residentGroup := admin.Group("/residents")
	residentGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleResidentFunc(container, "getResidents"))
	residentGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleResidentFunc(container, "getResident"))
	residentGroup.POST("", controllers.HandleResidentFunc(container, "createResident"))
	residentGroup.PUT("/:id", controllers.HandleResidentFunc(container, "updateResident"))
	residentGroup.DELETE("/:id", controllers.HandleResidentFunc(container, "deleteResident"))
	residentGroup.POST("/:id/link", controllers.HandleResidentFunc(container, "linkUser"))
	residentGroup.DELETE("/:id/link", controllers.HandleResidentFunc(container, "unlinkUser"))

	// 用户账号路由
	userGroup := admin.Group("/users")
	userGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// 缴费路由（管理端）
	paymentGroup := admin.Group("/payments")
	paymentGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandlePaymentFunc(container, "getPayments"))
	paymentGroup.GET("/statistics", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandlePaymentFunc(container, "getStatistics"))
	paymentGroup.GET("/:id", controllers.HandlePaymentFunc(container, "getPayment"))
	paymentGroup.POST("", controllers.HandlePaymentFunc(container, "createPayment"))
	paymentGroup.PUT("/:id/pay", controllers.HandlePaymentFunc(container, "markPaid"))

	// 报修路由（管理端）
	maintenanceGroup := admin.Group("/maintenance")
	maintenanceGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleMaintenanceFunc(container, "getRequests"))
	maintenanceGroup.GET("/:id", controllers.HandleMaintenanceFunc(container, "getRequest"))
	maintenanceGroup.PUT("/:id/status", controllers.HandleMaintenanceFunc(container, "updateStatus"))
}
