package services

import (
	"errors"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// RoomReportStat 是按房间聚合的浪费统计
type RoomReportStat struct {
	RoomID      uint    `json:"room_id"`
	RoomName    string  `json:"room_name"`
	TotalWasted float64 `json:"total_wasted"`
	TotalCost   float64 `json:"total_cost"`
	TotalCarbon float64 `json:"total_carbon"`
}

// ReportTotals 是全量汇总
type ReportTotals struct {
	Wasted float64 `json:"wasted"`
	Cost   float64 `json:"cost"`
	Carbon float64 `json:"carbon"`
}

// ReportSummary 是聚合报表的完整响应
type ReportSummary struct {
	Stats  []RoomReportStat `json:"stats"`
	Totals ReportTotals     `json:"totals"`
}

// InterfaceAlertService 定义告警服务接口
type InterfaceAlertService interface {
	GetAllAlerts() ([]models.Alert, error)
	GetAlertByID(id uint) (*models.Alert, error)
	ResolveAlert(id uint) (*models.Alert, error)
	GetReportSummary() (*ReportSummary, error)
}

// AlertService 提供告警查询、处理与聚合报表
type AlertService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  *RedisService
}

// NewAlertService 创建一个新的告警服务
func NewAlertService(db *gorm.DB, cfg *config.Config, redis *RedisService) InterfaceAlertService {
	return &AlertService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// 1 GetAllAlerts 获取全部告警，附带房间与嫌疑设备详情，最新在前
func (s *AlertService) GetAllAlerts() ([]models.Alert, error) {
	var alerts []models.Alert
	if err := s.DB.Preload("Room").Preload("SuspectedDevices").
		Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// 2 GetAlertByID 根据ID获取告警
func (s *AlertService) GetAlertByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.DB.Preload("Room").Preload("SuspectedDevices").First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// 3 ResolveAlert 将告警置为已处理。幂等：重复处理不报错也不改动
func (s *AlertService) ResolveAlert(id uint) (*models.Alert, error) {
	alert, err := s.GetAlertByID(id)
	if err != nil {
		return nil, err
	}

	if !alert.Resolve() {
		// 已经处理过，原样返回
		return alert, nil
	}

	if err := s.DB.Model(&models.Alert{}).Where("id = ?", id).
		Update("status", models.AlertStatusResolved).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// 4 GetReportSummary 按房间聚合浪费电量/电费/碳排放并给出总计。
// 纯聚合查询，结果短暂缓存，缓存故障自动落回数据库。
func (s *AlertService) GetReportSummary() (*ReportSummary, error) {
	if s.Redis != nil {
		var cached ReportSummary
		if err := s.Redis.GetReportSummary(&cached); err == nil {
			return &cached, nil
		}
	}

	var stats []RoomReportStat
	err := s.DB.Model(&models.ReportLog{}).
		Select("report_logs.room_id AS room_id, rooms.name AS room_name, " +
			"SUM(report_logs.wasted_energy) AS total_wasted, " +
			"SUM(report_logs.cost) AS total_cost, " +
			"SUM(report_logs.carbon_emission) AS total_carbon").
		Joins("JOIN rooms ON rooms.id = report_logs.room_id").
		Group("report_logs.room_id, rooms.name").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	var totals ReportTotals
	err = s.DB.Model(&models.ReportLog{}).
		Select("COALESCE(SUM(wasted_energy),0) AS wasted, " +
			"COALESCE(SUM(cost),0) AS cost, " +
			"COALESCE(SUM(carbon_emission),0) AS carbon").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{Stats: stats, Totals: totals}

	if s.Redis != nil {
		if err := s.Redis.CacheReportSummary(summary); err != nil {
			config.Warning("缓存聚合报表失败: %v", err)
		}
	}

	return summary, nil
}
