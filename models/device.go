package models

// Device represents a monitored electrical appliance in a room
type Device struct {
	BaseModel
	Name string  `gorm:"type:varchar(100);not null" json:"name"` // 设备名称，如"投影仪"
	Watt float64 `gorm:"not null" json:"watt"`                   // 额定功率(瓦)，非负

	RoomID uint `gorm:"not null;index" json:"room_id"` // 所属房间ID，设备有且仅属于一个房间

	// UsageProbability is the long-run likelihood this device is left
	// on outside working hours, in [0,1]. Zero is a legal prior, so the
	// 0.5 default is applied at creation time, not by the column.
	UsageProbability float64 `json:"usage_probability"`

	// Relations
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
