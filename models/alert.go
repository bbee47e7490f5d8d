package models

// AlertStatus represents the lifecycle status of an alert
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

// Alert 表示一次确认的下班时段异常负载告警
type Alert struct {
	BaseModel
	RoomID       uint        `gorm:"not null;index" json:"room_id"`                        // 告警所属房间
	MeasuredWatt float64     `gorm:"not null" json:"measured_watt"`                        // 触发告警的实测负载(瓦)
	Status       AlertStatus `gorm:"type:varchar(20);default:'active'" json:"status"`     // active -> resolved，仅允许该转换
	MLScore      float64     `gorm:"default:0" json:"ml_score"`                            // 外部模型给出的异常分 [0,100]
	MLAverage    float64     `gorm:"default:0" json:"ml_average"`                          // 外部模型参考的平均用电
	Confidence   int         `gorm:"default:0" json:"confidence"`                          // 综合置信度 [0,100]

	// 关联关系
	Room             *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	SuspectedDevices []Device `gorm:"many2many:alert_suspected_devices;" json:"suspected_devices,omitempty"` // 最可能解释该负载的设备组合
}

// Resolve 将告警标记为已处理。重复处理是幂等的：
// 已处理的告警保持不变，返回 false 表示无需落库。
func (a *Alert) Resolve() bool {
	if a.Status == AlertStatusResolved {
		return false
	}
	a.Status = AlertStatusResolved
	return true
}
