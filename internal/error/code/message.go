package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:      "成功",
	ErrUnknown:      "未知错误",
	ErrBind:         "请求参数绑定错误",
	ErrValidation:   "请求参数验证错误",
	ErrTokenInvalid: "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 账号相关错误码
	ErrUserNotFound:          "账号不存在",
	ErrUserAlreadyExist:      "账号已存在",
	ErrUserPasswordIncorrect: "账号密码错误",

	// 街道相关错误码
	ErrStreetNotFound:     "街道不存在",
	ErrStreetAlreadyExist: "街道已存在",
	ErrStreetHasPlots:     "该街道下存在地块，无法删除",

	// 地块相关错误码
	ErrPlotNotFound:     "地块不存在",
	ErrPlotAlreadyExist: "地块已存在",
	ErrPlotHasResidents: "该地块下存在住户，无法删除",

	// 住户相关错误码
	ErrResidentNotFound:     "住户不存在",
	ErrResidentAlreadyExist: "住户已存在",

	// 通知相关错误码
	ErrNotificationNotFound:         "通知不存在",
	ErrNotificationInvalidRecipient: "通知接收方不合法",

	// 缴费相关错误码
	ErrPaymentNotFound:    "缴费记录不存在",
	ErrPaymentAlreadyPaid: "缴费记录已缴清",

	// 报修相关错误码
	ErrMaintenanceNotFound:      "报修工单不存在",
	ErrMaintenanceInvalidStatus: "报修工单状态不合法",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态映射
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	ErrStreetNotFound:     StatusNotFound,
	ErrStreetAlreadyExist: StatusBadRequest,
	ErrStreetHasPlots:     StatusBadRequest,

	ErrPlotNotFound:     StatusNotFound,
	ErrPlotAlreadyExist: StatusBadRequest,
	ErrPlotHasResidents: StatusBadRequest,

	ErrResidentNotFound:     StatusNotFound,
	ErrResidentAlreadyExist: StatusBadRequest,

	ErrNotificationNotFound:         StatusNotFound,
	ErrNotificationInvalidRecipient: StatusBadRequest,

	ErrPaymentNotFound:    StatusNotFound,
	ErrPaymentAlreadyPaid: StatusBadRequest,

	ErrMaintenanceNotFound:      StatusNotFound,
	ErrMaintenanceInvalidStatus: StatusBadRequest,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 根据错误码获取对应的消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 根据错误码获取对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
