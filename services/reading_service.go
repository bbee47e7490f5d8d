package services

import (
	"context"
	"errors"
	"time"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// InterfaceReadingService 定义读数服务接口
type InterfaceReadingService interface {
	IngestReading(ctx context.Context, roomID uint, watt float64, timestamp *time.Time) (*models.MeterReading, *AnalysisResult, error)
	GetRecentReadings(limit int) ([]models.MeterReading, error)
	GetRoomReadings(roomID uint, limit int) ([]models.MeterReading, error)
}

// ReadingService 提供电表读数接入与查询
type ReadingService struct {
	DB       *gorm.DB
	Config   *config.Config
	Analysis InterfaceAnalysisService
	MQTT     InterfaceMQTTService
	Redis    *RedisService
}

// NewReadingService 创建一个新的读数服务
func NewReadingService(db *gorm.DB, cfg *config.Config, analysis InterfaceAnalysisService, mqtt InterfaceMQTTService, redis *RedisService) InterfaceReadingService {
	return &ReadingService{
		DB:       db,
		Config:   cfg,
		Analysis: analysis,
		MQTT:     mqtt,
		Redis:    redis,
	}
}

// IngestReading 接入一条读数并运行完整分析流水线。
// 读数本身无条件落库；落库失败直接中止，不做任何分析。
// 告警/核算写失败会向上抛出，但已入库的读数不回滚。
func (s *ReadingService) IngestReading(ctx context.Context, roomID uint, watt float64, timestamp *time.Time) (*models.MeterReading, *AnalysisResult, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, err
	}

	reading := &models.MeterReading{
		RoomID: roomID,
		Watt:   watt,
	}
	if timestamp != nil {
		reading.Timestamp = *timestamp
	} else {
		reading.Timestamp = time.Now()
	}

	if err := s.DB.Create(reading).Error; err != nil {
		return nil, nil, err
	}

	// 最新读数写入缓存，供看板轮询，失败不影响主流程
	if s.Redis != nil {
		if err := s.Redis.CacheLatestReading(roomID, reading); err != nil {
			config.Warning("缓存最新读数失败: %v", err)
		}
	}

	// 新读数广播尽力而为
	if s.MQTT != nil {
		if err := s.MQTT.PublishReading(roomID, watt, reading.Timestamp); err != nil {
			config.Warning("推送读数通知失败: %v", err)
		}
	}

	// 时段门控用读数自身的时间戳，补报数据按当时判定
	result, err := s.Analysis.AnalyzeReading(ctx, &room, watt, reading.Timestamp)
	if err != nil {
		return reading, nil, err
	}

	return reading, result, nil
}

// GetRecentReadings 获取最近的读数，最新在前
func (s *ReadingService) GetRecentReadings(limit int) ([]models.MeterReading, error) {
	if limit <= 0 {
		limit = 50
	}
	var readings []models.MeterReading
	if err := s.DB.Order("timestamp DESC").Limit(limit).Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

// GetRoomReadings 获取指定房间的读数，最新在前
func (s *ReadingService) GetRoomReadings(roomID uint, limit int) ([]models.MeterReading, error) {
	if limit <= 0 {
		limit = 100
	}
	var readings []models.MeterReading
	if err := s.DB.Where("room_id = ?", roomID).Order("timestamp DESC").Limit(limit).Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}
