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
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
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
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 账号相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 账号不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 账号已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 账号密码错误.
	ErrUserPasswordIncorrect
)

// 街道相关错误码 (102xxx).
const (
	// ErrStreetNotFound - 404: 街道不存在.
	ErrStreetNotFound int = iota + 102000
	// ErrStreetAlreadyExist - 400: 街道已存在.
	ErrStreetAlreadyExist
	// ErrStreetHasPlots - 400: 街道下存在地块.
	ErrStreetHasPlots
)

// 地块相关错误码 (103xxx).
const (
	// ErrPlotNotFound - 404: 地块不存在.
	ErrPlotNotFound int = iota + 103000
	// ErrPlotAlreadyExist - 400: 地块已存在.
	ErrPlotAlreadyExist
	// ErrPlotHasResidents - 400: 地块下存在住户.
	ErrPlotHasResidents
)

// 住户相关错误码 (104xxx).
const (
	// ErrResidentNotFound - 404: 住户不存在.
	ErrResidentNotFound int = iota + 104000
	// ErrResidentAlreadyExist - 400: 住户已存在.
	ErrResidentAlreadyExist
)

// 通知相关错误码 (105xxx).
const (
	// ErrNotificationNotFound - 404: 通知不存在.
	ErrNotificationNotFound int = iota + 105000
	// ErrNotificationInvalidRecipient - 400: 通知接收方不合法.
	ErrNotificationInvalidRecipient
)

// 缴费相关错误码 (106xxx).
const (
	// ErrPaymentNotFound - 404: 缴费记录不存在.
	ErrPaymentNotFound int = iota + 106000
	// ErrPaymentAlreadyPaid - 400: 缴费记录已缴清.
	ErrPaymentAlreadyPaid
)

// 报修相关错误码 (107xxx).
const (
	// ErrMaintenanceNotFound - 404: 报修工单不存在.
	ErrMaintenanceNotFound int = iota + 107000
	// ErrMaintenanceInvalidStatus - 400: 报修工单状态不合法.
	ErrMaintenanceInvalidStatus
)

// 数据库相关错误码 (108xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 108000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
