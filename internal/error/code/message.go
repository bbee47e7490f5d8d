package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:      "成功",
	ErrUnknown:      "未知错误",
	ErrBind:         "请求参数绑定错误",
	ErrValidation:   "请求参数验证错误",
	ErrTokenInvalid: "无效的认证令牌",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 机构/楼栋/房间相关错误码
	ErrInstitutionNotFound: "机构不存在",
	ErrBuildingNotFound:    "楼栋不存在",
	ErrRoomNotFound:        "房间不存在",

	// 设备相关错误码
	ErrDeviceNotFound: "设备不存在",
	ErrDeviceInvalid:  "设备参数非法",

	// 读数相关错误码
	ErrReadingInvalid: "读数参数非法",

	// 告警相关错误码
	ErrAlertNotFound: "告警不存在",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:      StatusOK,
	ErrUnknown:      StatusInternalServerError,
	ErrBind:         StatusBadRequest,
	ErrValidation:   StatusBadRequest,
	ErrTokenInvalid: StatusUnauthorized,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 机构/楼栋/房间相关错误码
	ErrInstitutionNotFound: StatusNotFound,
	ErrBuildingNotFound:    StatusNotFound,
	ErrRoomNotFound:        StatusNotFound,

	// 设备相关错误码
	ErrDeviceNotFound: StatusNotFound,
	ErrDeviceInvalid:  StatusBadRequest,

	// 读数相关错误码
	ErrReadingInvalid: StatusBadRequest,

	// 告警相关错误码
	ErrAlertNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
