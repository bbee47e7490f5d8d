package routes

import (
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/controllers"
	_ "github.com/Godwin-Sajeev/Power-Sence-portfolio/docs"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/middleware"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
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
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
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
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// 读数上报与查询路由，供电表采集端调用，不要求认证
	api.POST("/reading", controllers.HandleReadingFunc(container, "postReading"))
	api.GET("/reading", controllers.HandleReadingFunc(container, "getReadings"))
	api.GET("/reading/room/:roomId", controllers.HandleReadingFunc(container, "getRoomReadings"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateSystemAdmin())

	// 机构路由
	auth.Group("/institution").GET("", controllers.HandleInstitutionFunc(container, "getInstitutions"))
	auth.Group("/institution").GET("/:id", controllers.HandleInstitutionFunc(container, "getInstitution"))
	auth.Group("/institution").POST("", controllers.HandleInstitutionFunc(container, "createInstitution"))
	auth.Group("/institution").PUT("/:id", controllers.HandleInstitutionFunc(container, "updateInstitution"))
	auth.Group("/institution").DELETE("/:id", controllers.HandleInstitutionFunc(container, "deleteInstitution"))

	// 楼栋路由
	auth.Group("/building").GET("", controllers.HandleBuildingFunc(container, "getBuildings"))
	auth.Group("/building").GET("/:id", controllers.HandleBuildingFunc(container, "getBuilding"))
	auth.Group("/building").POST("", controllers.HandleBuildingFunc(container, "createBuilding"))
	auth.Group("/building").PUT("/:id", controllers.HandleBuildingFunc(container, "updateBuilding"))
	auth.Group("/building").DELETE("/:id", controllers.HandleBuildingFunc(container, "deleteBuilding"))
	auth.Group("/building").GET("/:id/rooms", controllers.HandleBuildingFunc(container, "getBuildingRooms"))

	// 房间路由
	auth.Group("/room").GET("", controllers.HandleRoomFunc(container, "getRooms"))
	auth.Group("/room").GET("/:id", controllers.HandleRoomFunc(container, "getRoom"))
	auth.Group("/room").POST("", controllers.HandleRoomFunc(container, "createRoom"))
	auth.Group("/room").PUT("/:id", controllers.HandleRoomFunc(container, "updateRoom"))
	auth.Group("/room").DELETE("/:id", controllers.HandleRoomFunc(container, "deleteRoom"))
	auth.Group("/room").GET("/:id/devices", controllers.HandleRoomFunc(container, "getRoomDevices"))

	// 设备路由
	auth.Group("/device").GET("", controllers.HandleDeviceFunc(container, "getDevices"))
	auth.Group("/device").GET("/:id", controllers.HandleDeviceFunc(container, "getDevice"))
	auth.Group("/device").POST("", controllers.HandleDeviceFunc(container, "createDevice"))
	auth.Group("/device").PUT("/:id", controllers.HandleDeviceFunc(container, "updateDevice"))
	auth.Group("/device").DELETE("/:id", controllers.HandleDeviceFunc(container, "deleteDevice"))

	// 告警路由
	auth.Group("/alerts").GET("", controllers.HandleAlertFunc(container, "getAlerts"))
	auth.Group("/alerts").GET("/reports", controllers.HandleAlertFunc(container, "getReports"))
	auth.Group("/alerts").GET("/:id", controllers.HandleAlertFunc(container, "getAlert"))
	auth.Group("/alerts").PATCH("/:id/resolve", controllers.HandleAlertFunc(container, "resolveAlert"))
}
