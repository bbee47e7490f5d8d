package models

// Room 表示被监测的房间
type Room struct {
	BaseModel
	Name                 string  `gorm:"type:varchar(100);not null" json:"name"`                      // 房间名称，如"机房201"
	BuildingID           uint    `gorm:"not null;index" json:"building_id"`                           // 所属楼栋ID
	WorkingHoursStart    string  `gorm:"type:varchar(5);default:'09:00'" json:"working_hours_start"`  // 上班时间 HH:mm
	WorkingHoursEnd      string  `gorm:"type:varchar(5);default:'17:00'" json:"working_hours_end"`    // 下班时间 HH:mm
	StandbyThresholdWatt float64 `gorm:"default:5" json:"standby_threshold_watt"`                     // 待机阈值(瓦)，低于该负载不做分析

	// 平面图坐标，供前端地图视图使用
	MapX      float64 `json:"map_x"`
	MapY      float64 `json:"map_y"`
	MapWidth  float64 `json:"map_width"`
	MapHeight float64 `json:"map_height"`

	// 关联关系
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Devices  []Device  `gorm:"foreignKey:RoomID" json:"devices,omitempty"` // 房间内的设备（一对多）
}
