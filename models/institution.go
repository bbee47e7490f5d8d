package models

// Institution 表示接入监测的机构（学校、园区等）
type Institution struct {
	BaseModel
	Name string `gorm:"type:varchar(100);unique;not null" json:"name"` // 机构名称，如"市立理工学院"

	// 关联关系
	Buildings []Building `gorm:"foreignKey:InstitutionID" json:"buildings,omitempty"` // 机构下的楼栋（一对多）
}
