package services

import (
	"errors"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// InterfaceInstitutionService 定义机构服务接口
type InterfaceInstitutionService interface {
	GetAllInstitutions() ([]models.Institution, error)
	GetInstitutionByID(id uint) (*models.Institution, error)
	CreateInstitution(institution *models.Institution) error
	UpdateInstitution(id uint, updates map[string]interface{}) (*models.Institution, error)
	DeleteInstitution(id uint) error
}

// InstitutionService 提供机构相关的服务
type InstitutionService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewInstitutionService 创建一个新的机构服务
func NewInstitutionService(db *gorm.DB, cfg *config.Config) InterfaceInstitutionService {
	return &InstitutionService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllInstitutions 获取所有机构列表
func (s *InstitutionService) GetAllInstitutions() ([]models.Institution, error) {
	var institutions []models.Institution
	if err := s.DB.Find(&institutions).Error; err != nil {
		return nil, err
	}
	return institutions, nil
}

// 2 GetInstitutionByID 根据ID获取机构
func (s *InstitutionService) GetInstitutionByID(id uint) (*models.Institution, error) {
	var institution models.Institution
	if err := s.DB.Preload("Buildings").First(&institution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}
	return &institution, nil
}

// 3 CreateInstitution 创建新机构
func (s *InstitutionService) CreateInstitution(institution *models.Institution) error {
	// 验证机构名称唯一性
	var count int64
	if err := s.DB.Model(&models.Institution{}).Where("name = ?", institution.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("机构名称已存在")
	}

	return s.DB.Create(institution).Error
}

// 4 UpdateInstitution 更新机构信息
func (s *InstitutionService) UpdateInstitution(id uint, updates map[string]interface{}) (*models.Institution, error) {
	institution, err := s.GetInstitutionByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(institution).Updates(updates).Error; err != nil {
		return nil, err
	}
	return institution, nil
}

// 5 DeleteInstitution 删除机构
func (s *InstitutionService) DeleteInstitution(id uint) error {
	institution, err := s.GetInstitutionByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(institution).Error
}
