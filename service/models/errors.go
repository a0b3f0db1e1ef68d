/*
 * @module service/models/errors
 * @description 业务错误类型定义，区分格式错误与校验错误以便控制器映射HTTP状态码
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 服务层返回类型化错误 -> 控制器层判断类型 -> 映射响应状态
 * @rules 可恢复的预期分支（如平价检查类型不兼容）使用Skipped结果而非错误
 * @dependencies errors, fmt
 * @refs api/controllers
 */

package models

import (
	"errors"
	"fmt"
)

// FormatError 文件不可读或表格格式不支持时的致命错误
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// NewFormatError 创建格式错误
func NewFormatError(format string, args ...interface{}) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}

// IsFormatError 判断错误是否为格式错误
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ValidationError 请求校验失败时的致命错误（如徽章类别评分缺失或越界）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建校验错误
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError 判断错误是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
