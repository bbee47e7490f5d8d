package services

import (
	"errors"

	"github.com/Godwin-Sajeev/Power-Sence-portfolio/config"
	"github.com/Godwin-Sajeev/Power-Sence-portfolio/models"

	"gorm.io/gorm"
)

// InterfaceRoomService 定义房间服务接口
type InterfaceRoomService interface {
	GetAllRooms(buildingID uint) ([]models.Room, error)
	GetRoomByID(id uint) (*models.Room, error)
	CreateRoom(room *models.Room) error
	UpdateRoom(id uint, updates map[string]interface{}) (*models.Room, error)
	DeleteRoom(id uint) error
	GetRoomDevices(roomID uint) ([]models.Device, error)
}

// RoomService 提供房间相关的服务
type RoomService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRoomService 创建一个新的房间服务
func NewRoomService(db *gorm.DB, cfg *config.Config) InterfaceRoomService {
	return &RoomService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllRooms 获取房间列表，buildingID 为 0 时不过滤，附带楼栋信息
func (s *RoomService) GetAllRooms(buildingID uint) ([]models.Room, error) {
	var rooms []models.Room
	query := s.DB.Preload("Building")
	if buildingID != 0 {
		query = query.Where("building_id = ?", buildingID)
	}
	if err := query.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// 2 GetRoomByID 根据ID获取房间
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Building").Preload("Devices").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// 3 CreateRoom 创建新房间
func (s *RoomService) CreateRoom(room *models.Room) error {
	// 验证所属楼栋存在
	var count int64
	if err := s.DB.Model(&models.Building{}).Where("id = ?", room.BuildingID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrBuildingNotFound
	}

	// 工作时段与待机阈值缺省值
	if room.WorkingHoursStart == "" {
		room.WorkingHoursStart = "09:00"
	}
	if room.WorkingHoursEnd == "" {
		room.WorkingHoursEnd = "17:00"
	}
	if room.StandbyThresholdWatt == 0 {
		room.StandbyThresholdWatt = 5
	}

	return s.DB.Create(room).Error
}

// 4 UpdateRoom 更新房间信息
func (s *RoomService) UpdateRoom(id uint, updates map[string]interface{}) (*models.Room, error) {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的房间信息
	return s.GetRoomByID(id)
}

// 5 DeleteRoom 删除房间
func (s *RoomService) DeleteRoom(id uint) error {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(room).Error
}

// 6 GetRoomDevices 获取房间内的设备列表
func (s *RoomService) GetRoomDevices(roomID uint) ([]models.Device, error) {
	if _, err := s.GetRoomByID(roomID); err != nil {
		return nil, err
	}

	var devices []models.Device
	if err := s.DB.Where("room_id = ?", roomID).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}
