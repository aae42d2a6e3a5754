package response

// 业务错误码按 HTTP 语义分段：4xxxx 调用方错误，5xxxx 服务端错误
// 5xxxx 的错误会上报 Sentry
var (
	ErrInvalidRequest  = newError(40000, "请求参数错误")
	ErrTokenInvalid    = newError(40100, "登录凭证无效或已过期")
	ErrUnauthorized    = newError(40101, "未登录或权限不足")
	ErrInvalidPassword = newError(40102, "密码错误")
	// ErrForbidden 操作者无权执行该操作（包括自审自批）
	ErrForbidden     = newError(40300, "无权执行该操作")
	ErrNotFound      = newError(40400, "资源不存在")
	ErrAlreadyExists = newError(40900, "资源已存在")
	// ErrInvalidTransition 当前状态下不允许执行该任务操作
	ErrInvalidTransition = newError(40901, "当前状态不允许该操作")
	// ErrPreconditionFailed 任务操作的前置条件不满足，提示信息会指明未满足的条件
	ErrPreconditionFailed = newError(41200, "前置条件不满足")
	ErrDatabase           = newError(50000, "数据库错误")
	ErrInternal           = newError(50001, "服务器内部错误")
)

// 前置条件名称，随 ErrPreconditionFailed 的提示返回
const (
	PreconditionIncompleteChildren  = "IncompleteChildren"
	PreconditionProgressNotComplete = "ProgressNotComplete"
)
