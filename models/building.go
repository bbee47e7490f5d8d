package models

// Building 表示机构下的楼栋信息
type Building struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null" json:"name"`            // 楼栋名称，如"理科楼"
	InstitutionID uint   `gorm:"not null;index" json:"institution_id"`              // 所属机构ID
	WorkingHoursStart string `gorm:"type:varchar(5);default:'09:00'" json:"working_hours_start"` // 楼栋默认上班时间 HH:mm
	WorkingHoursEnd   string `gorm:"type:varchar(5);default:'17:00'" json:"working_hours_end"`   // 楼栋默认下班时间 HH:mm

	// 关联关系
	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Rooms       []Room       `gorm:"foreignKey:BuildingID" json:"rooms,omitempty"` // 楼栋下的房间（一对多）
}
