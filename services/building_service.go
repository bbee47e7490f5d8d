package services

import (
	"errors"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// InterfaceBuildingService 定义楼栋服务接口
type InterfaceBuildingService interface {
	GetAllBuildings(institutionID uint) ([]models.Building, error)
	GetBuildingByID(id uint) (*models.Building, error)
	CreateBuilding(building *models.Building) error
	UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error)
	DeleteBuilding(id uint) error
	GetBuildingRooms(buildingID uint) ([]models.Room, error)
}

// BuildingService 提供楼栋相关的服务
type BuildingService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBuildingService 创建一个新的楼栋服务
func NewBuildingService(db *gorm.DB, cfg *config.Config) InterfaceBuildingService {
	return &BuildingService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllBuildings 获取楼栋列表，institutionID 为 0 时不过滤
func (s *BuildingService) GetAllBuildings(institutionID uint) ([]models.Building, error) {
	var buildings []models.Building
	query := s.DB
	if institutionID != 0 {
		query = query.Where("institution_id = ?", institutionID)
	}
	if err := query.Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

// 2 GetBuildingByID 根据ID获取楼栋
func (s *BuildingService) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.Preload("Rooms").First(&building, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return &building, nil
}

// 3 CreateBuilding 创建新楼栋
func (s *BuildingService) CreateBuilding(building *models.Building) error {
	// 验证所属机构存在
	var count int64
	if err := s.DB.Model(&models.Institution{}).Where("id = ?", building.InstitutionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInstitutionNotFound
	}

	// 设置默认工作时段
	if building.WorkingHoursStart == "" {
		building.WorkingHoursStart = "09:00"
	}
	if building.WorkingHoursEnd == "" {
		building.WorkingHoursEnd = "17:00"
	}

	return s.DB.Create(building).Error
}

// 4 UpdateBuilding 更新楼栋信息
func (s *BuildingService) UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error) {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(building).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的楼栋信息
	return s.GetBuildingByID(id)
}

// 5 DeleteBuilding 删除楼栋
func (s *BuildingService) DeleteBuilding(id uint) error {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(building).Error
}

// 6 GetBuildingRooms 获取楼栋下的房间列表
func (s *BuildingService) GetBuildingRooms(buildingID uint) ([]models.Room, error) {
	if _, err := s.GetBuildingByID(buildingID); err != nil {
		return nil, err
	}

	var rooms []models.Room
	if err := s.DB.Where("building_id = ?", buildingID).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
