package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService *services.RedisService

	// 通知服务
	mqttService services.InterfaceMQTTService

	// 外部评分服务
	mlService services.InterfaceMLService

	// 业务服务
	institutionService services.InterfaceInstitutionService
	buildingService    services.InterfaceBuildingService
	roomService        services.InterfaceRoomService
	deviceService      services.InterfaceDeviceService
	adminService       services.InterfaceAdminService
	analysisService    services.InterfaceAnalysisService
	readingService     services.InterfaceReadingService
	alertService       services.InterfaceAlertService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)

	// 初始化MQTT通知服务并连接，连接失败只降级不中止
	c.mqttService = services.NewMQTTService(c.config)
	if err := c.mqttService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v，告警通知将不可用", err)
	}

	// 初始化ML评分客户端
	c.mlService = services.NewMLService(c.config)

	// 初始化业务服务
	c.institutionService = services.NewInstitutionService(c.db, c.config)
	c.buildingService = services.NewBuildingService(c.db, c.config)
	c.roomService = services.NewRoomService(c.db, c.config)
	c.deviceService = services.NewDeviceService(c.db, c.config)
	c.adminService = services.NewAdminService(c.db, c.config)

	// 分析流水线
	c.analysisService = services.NewAnalysisService(c.db, c.config, c.mlService, c.mqttService)
	c.readingService = services.NewReadingService(c.db, c.config, c.analysisService, c.mqttService, c.redisService)
	c.alertService = services.NewAlertService(c.db, c.config, c.redisService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "mqtt":
		return c.mqttService
	case "ml":
		return c.mlService
	case "institution":
		return c.institutionService
	case "building":
		return c.buildingService
	case "room":
		return c.roomService
	case "device":
		return c.deviceService
	case "admin":
		return c.adminService
	case "analysis":
		return c.analysisService
	case "reading":
		return c.readingService
	case "alert":
		return c.alertService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
