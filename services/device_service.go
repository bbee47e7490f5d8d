package services

import (
	"errors"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// InterfaceDeviceService 定义设备服务接口
type InterfaceDeviceService interface {
	GetAllDevices(roomID uint) ([]models.Device, error)
	GetDeviceByID(id uint) (*models.Device, error)
	CreateDevice(device *models.Device) error
	UpdateDevice(id uint, updates map[string]interface{}) (*models.Device, error)
	DeleteDevice(id uint) error
}

// DeviceService 提供设备相关的服务
type DeviceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDeviceService 创建一个新的设备服务
func NewDeviceService(db *gorm.DB, cfg *config.Config) InterfaceDeviceService {
	return &DeviceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllDevices 获取设备列表，roomID 为 0 时不过滤
func (s *DeviceService) GetAllDevices(roomID uint) ([]models.Device, error) {
	var devices []models.Device
	query := s.DB.Preload("Room")
	if roomID != 0 {
		query = query.Where("room_id = ?", roomID)
	}
	if err := query.Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// 2 GetDeviceByID 根据ID获取设备
func (s *DeviceService) GetDeviceByID(id uint) (*models.Device, error) {
	var device models.Device
	if err := s.DB.Preload("Room").First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

// 3 CreateDevice 创建新设备
func (s *DeviceService) CreateDevice(device *models.Device) error {
	// 额定功率不允许为负
	if device.Watt < 0 {
		return errors.New("设备额定功率不能为负")
	}

	// 遗忘概率必须在 [0,1]，0 是合法先验，缺省值由调用方决定
	if device.UsageProbability < 0 || device.UsageProbability > 1 {
		return errors.New("设备遗忘概率必须在0到1之间")
	}

	// 验证所属房间存在
	var count int64
	if err := s.DB.Model(&models.Room{}).Where("id = ?", device.RoomID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRoomNotFound
	}

	return s.DB.Create(device).Error
}

// 4 UpdateDevice 更新设备信息
func (s *DeviceService) UpdateDevice(id uint, updates map[string]interface{}) (*models.Device, error) {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return nil, err
	}

	if watt, ok := updates["watt"].(float64); ok && watt < 0 {
		return nil, errors.New("设备额定功率不能为负")
	}
	if prob, ok := updates["usage_probability"].(float64); ok && (prob < 0 || prob > 1) {
		return nil, errors.New("设备遗忘概率必须在0到1之间")
	}

	if err := s.DB.Model(device).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的设备信息
	return s.GetDeviceByID(id)
}

// 5 DeleteDevice 删除设备
func (s *DeviceService) DeleteDevice(id uint) error {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(device).Error
}
