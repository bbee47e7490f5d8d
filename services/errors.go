package services

import "errors"

// 业务错误哨兵，控制器据此映射响应码
var (
	ErrInstitutionNotFound = errors.New("机构不存在")
	ErrBuildingNotFound    = errors.New("楼栋不存在")
	ErrRoomNotFound        = errors.New("房间不存在")
	ErrDeviceNotFound      = errors.New("设备不存在")
	ErrAlertNotFound       = errors.New("告警不存在")
	ErrAdminNotFound       = errors.New("管理员不存在")
)
