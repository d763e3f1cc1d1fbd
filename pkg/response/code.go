package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists    = 10001
	ErrUserNotFound  = 10002
	ErrAuthFailed    = 10003
	ErrTokenInvalid  = 10004
	ErrNoPermission  = 10005
	ErrSelfFollow    = 10006
	ErrPasswordWrong = 10007

	// 内容模块错误 200xx
	ErrPostNotFound     = 20001
	ErrProgressNotFound = 20002
	ErrCommentNotFound  = 20003
	ErrEmptyContent     = 20004
	ErrMediaInvalid     = 20005
	ErrPlanNotFound     = 20006
	ErrRequestNotFound  = 20007

	// 消息/通知模块错误 300xx
	ErrMessageNotFound      = 30001
	ErrNotificationNotFound = 30002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
