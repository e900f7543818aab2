package api_router

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/dto"
	"github.com/zachlandes/2ml-crm/pkg/code"
	apperrors "github.com/zachlandes/2ml-crm/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ActionHandler 行为计数 API 路由处理器
type ActionHandler struct {
	*Handler
}

// NewActionHandler 创建 ActionHandler 实例
func NewActionHandler(a *app.App) *ActionHandler {
	return &ActionHandler{Handler: NewHandler(a)}
}

// List 获取全部计数
// @Router /api/actions [get]
func (h *ActionHandler) List(c *gin.Context) {
	list, err := h.App.ActionService.GetActionCounts(c.Request.Context())
	if err != nil {
		h.fail(c, "ActionHandler.List", err)
		return
	}
	ok(c, gin.H{"actions": dto.NewActionCountDTOs(list)})
}

// Track records one action synchronously and returns the new count
// Track 记录一次行为并返回最新计数
// @Router /api/actions [post]
func (h *ActionHandler) Track(c *gin.Context) {
	params := &dto.ActionTrackRequest{}
	if !h.bind(c, "ActionHandler.Track", params) {
		return
	}
	ctx := c.Request.Context()
	kind := domain.ActionType(params.ActionType)
	h.App.ActionService.TrackAction(ctx, kind)

	n, err := h.App.ActionService.GetActionCountByType(ctx, kind)
	if err != nil {
		h.fail(c, "ActionHandler.Track", err)
		return
	}
	ok(c, gin.H{"count": n})
}

// Count 获取计数，type 为空时返回总和
// @Router /api/actions/count [get]
func (h *ActionHandler) Count(c *gin.Context) {
	params := &dto.ActionCountRequest{}
	if !h.bind(c, "ActionHandler.Count", params) {
		return
	}
	ctx := c.Request.Context()

	var (
		total int64
		err   error
	)
	if params.Type == "" {
		total, err = h.App.ActionService.GetTotalActionCount(ctx)
	} else {
		kind := domain.ActionType(params.Type)
		if !kind.Valid() {
			apperrors.ErrorResponse(c, code.ErrorInvalidActionType.WithDetails(params.Type))
			return
		}
		total, err = h.App.ActionService.GetActionCountByType(ctx, kind)
	}
	if err != nil {
		h.fail(c, "ActionHandler.Count", err)
		return
	}
	ok(c, gin.H{"total": total})
}
