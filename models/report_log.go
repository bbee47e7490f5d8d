package models

// ReportLog 表示随告警生成的能耗浪费核算记录，按异常负载持续一小时估算
type ReportLog struct {
	BaseModel
	RoomID         uint    `gorm:"not null;index" json:"room_id"` // 所属房间
	WastedEnergy   float64 `gorm:"not null" json:"wasted_energy"` // 浪费电量 (kWh)
	Cost           float64 `gorm:"not null" json:"cost"`          // 折算电费
	CarbonEmission float64 `gorm:"not null" json:"carbon_emission"` // 折算碳排放 (kg CO2)

	// 关联关系
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
