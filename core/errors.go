package core

import "errors"

// DomainError 是领域层的统一错误类型：模块 + 错误码 + 消息。
// IsXXX 检查函数基于错误码判断，经 %w 包装后依然可识别。
type DomainError struct {
	Module  string // 模块名（store / cf / engine ...）
	Code    string // 错误码（NOT_FOUND / USER_NOT_FOUND ...）
	Message string
}

func (e *DomainError) Error() string {
	return e.Module + ": " + e.Message
}

// Is 支持 errors.Is 按 模块+错误码 匹配，忽略消息文本。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// NewDomainError 创建领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{Module: module, Code: code, Message: message}
}

// GetDomainError 从错误链中提取 DomainError；不存在时返回 nil。
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"      // 资源不存在
	ErrorCodeUserNotFound = "USER_NOT_FOUND" // 目标用户在评分矩阵中不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput = "INVALID_INPUT"  // 输入无效
)

// 模块名常量
const (
	ModuleStore   = "store"
	ModuleDataset = "dataset"
	ModuleCF      = "cf"
	ModuleEngine  = "engine"
)

// ErrUnknownUser 表示目标用户没有任何交互记录（评分矩阵中查不到）。
// 这是唯一允许跨出引擎边界的错误，且只从直连协同过滤入口抛出；
// 混合推荐入口在内部捕获并降级到热门兜底。
var ErrUnknownUser = NewDomainError(ModuleCF, ErrorCodeUserNotFound, "unknown user")

// IsUnknownUser 检查错误是否为"目标用户不存在"。
func IsUnknownUser(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUserNotFound
	}
	return false
}

// IsNotFound 检查错误是否为资源不存在。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
