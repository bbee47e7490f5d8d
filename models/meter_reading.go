package models

import "time"

// MeterReading 表示房间电表的一次功率读数，只追加不修改
type MeterReading struct {
	BaseModel
	RoomID    uint      `gorm:"not null;index" json:"room_id"` // 所属房间ID
	Watt      float64   `gorm:"not null" json:"watt"`          // 实测负载(瓦)
	Timestamp time.Time `json:"timestamp"`                     // 读数时间，缺省为入库时间

	// 关联关系
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
