// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/middleware"
	pkgapp "github.com/zachlandes/2ml-crm/pkg/app"
	"github.com/zachlandes/2ml-crm/pkg/code"
	apperrors "github.com/zachlandes/2ml-crm/pkg/errors"
	"github.com/zachlandes/2ml-crm/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// bind runs BindAndValid and writes the 400 response on failure
// bind 绑定参数，失败时直接输出 400
func (h *Handler) bind(c *gin.Context, method string, params any) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn(method+".BindAndValid err",
			zap.Error(errs),
			zap.String(logger.FieldTraceID, middleware.GetTraceIDFromGin(c)))
		apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return false
	}
	return true
}

// fail logs err under method and renders it
func (h *Handler) fail(c *gin.Context, method string, err error) {
	h.logError(c.Request.Context(), method, err)
	apperrors.ErrorResponse(c, err)
}

func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Error(method+" err",
		zap.Error(err),
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
	)
}

func ok(c *gin.Context, payload gin.H) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(payload))
}
