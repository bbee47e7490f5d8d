package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 机构/楼栋/房间相关错误码 (102xxx).
const (
	// ErrInstitutionNotFound - 404: 机构不存在.
	ErrInstitutionNotFound int = iota + 102000
	// ErrBuildingNotFound - 404: 楼栋不存在.
	ErrBuildingNotFound
	// ErrRoomNotFound - 404: 房间不存在.
	ErrRoomNotFound
)

// 设备相关错误码 (103xxx).
const (
	// ErrDeviceNotFound - 404: 设备不存在.
	ErrDeviceNotFound int = iota + 103000
	// ErrDeviceInvalid - 400: 设备参数非法.
	ErrDeviceInvalid
)

// 读数相关错误码 (104xxx).
const (
	// ErrReadingInvalid - 400: 读数参数非法.
	ErrReadingInvalid int = iota + 104000
)

// 告警相关错误码 (105xxx).
const (
	// ErrAlertNotFound - 404: 告警不存在.
	ErrAlertNotFound int = iota + 105000
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
