// Package errors renders service errors as HTTP failure bodies
// Package errors 将服务错误渲染为 HTTP 失败响应
package errors

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/zachlandes/2ml-crm/internal/middleware"
	pkgapp "github.com/zachlandes/2ml-crm/pkg/app"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Success 恒为 false
	Success bool `json:"success"`
	// Message 错误消息
	Message string `json:"error"`
	// Code 错误码
	Code int `json:"code"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`

	// HTTPStatus 响应状态码
	HTTPStatus int `json:"-"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:       c.Code(),
		Message:    c.Msg(),
		Details:    c.Details(),
		HTTPStatus: c.StatusCode(),
		Cause:      cause,
		Timestamp:  time.Now(),
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// FromError converts any error into an AppError.
// Internal failures keep their cause for logging but only expose a generic message;
// 4xx codes keep their details since those describe the caller's mistake.
// FromError 将任意错误转换为 AppError，内部错误只暴露通用信息
func FromError(err error, lng string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		out := &AppError{
			Code:       codeErr.Code(),
			Message:    codeErr.MsgIn(lng),
			HTTPStatus: codeErr.StatusCode(),
			Cause:      err,
			Timestamp:  time.Now(),
		}
		if out.HTTPStatus < http.StatusInternalServerError {
			out.Details = codeErr.Details()
		}
		return out
	}

	return &AppError{
		Code:       code.ErrorServerInternal.Code(),
		Message:    code.ErrorServerInternal.MsgIn(lng),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      err,
		Timestamp:  time.Now(),
	}
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID 与语言，将错误转换为 AppError 并返回 JSON 响应
func ErrorResponse(c *gin.Context, err error) {
	appErr := FromError(err, c.GetString(pkgapp.LangKey))
	appErr.TraceID = middleware.GetTraceIDFromGin(c)
	c.Set(pkgapp.StatusCodeKey, appErr.Code)
	if len(appErr.Details) > 0 {
		appErr.Message = appErr.Message + ": " + strings.Join(appErr.Details, ",")
		appErr.Details = nil
	}
	c.JSON(appErr.HTTPStatus, appErr)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
