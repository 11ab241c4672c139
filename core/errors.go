package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 打分错误：MISSING_USER_CONTEXT, DIMENSION_MISMATCH
//   - 相似度错误：STALE_MATRIX_REBUILD
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "MISSING_USER_CONTEXT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "scoring", "similarity"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误

	// 推荐核心错误代码
	ErrorCodeMissingUserContext = "MISSING_USER_CONTEXT" // 个性化请求缺少用户画像
	ErrorCodeDimensionMismatch  = "DIMENSION_MISMATCH"   // 数值输入长度不一致
	ErrorCodeStaleMatrixRebuild = "STALE_MATRIX_REBUILD" // 矩阵重建时目录拉取失败
)

// 模块名称常量
const (
	ModuleStore      = "store"      // 存储模块
	ModuleSignal     = "signal"     // 信号聚合模块
	ModuleSimilarity = "similarity" // 相似度模块
	ModuleScoring    = "scoring"    // 打分模块
	ModuleService    = "service"    // 推荐服务模块
	ModuleFeature    = "feature"    // 特征模块
)

// 领域错误定义
var (
	// ErrMissingUserContext 表示个性化打分缺少用户画像；不可重试，等价 4xx
	ErrMissingUserContext = NewDomainError(ModuleService, ErrorCodeMissingUserContext,
		"recommend: personalized query requires a user profile")

	// ErrDimensionMismatch 表示数值输入形状不合法；属调用方 bug，不可重试
	ErrDimensionMismatch = NewDomainError(ModuleScoring, ErrorCodeDimensionMismatch,
		"mathx: values and weights must have the same length")
)

func hasCode(err error, module, code string) bool {
	domainErr := GetDomainError(err)
	if domainErr == nil {
		return false
	}
	if module != "" && domainErr.Module != module {
		return false
	}
	return domainErr.Code == code
}

// IsMissingUserContext 检查错误是否为缺少用户画像
func IsMissingUserContext(err error) bool {
	return hasCode(err, "", ErrorCodeMissingUserContext)
}

// IsDimensionMismatch 检查错误是否为数值维度不一致
func IsDimensionMismatch(err error) bool {
	return hasCode(err, "", ErrorCodeDimensionMismatch)
}

// IsStaleMatrixRebuild 检查错误是否为矩阵重建失败（调用方可退避重试）
func IsStaleMatrixRebuild(err error) bool {
	return hasCode(err, "", ErrorCodeStaleMatrixRebuild)
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, "", ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, "", ErrorCodeNotSupported)
}
