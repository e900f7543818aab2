package api_router

import (
	"strings"

	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/dto"
	"github.com/zachlandes/2ml-crm/pkg/code"
	apperrors "github.com/zachlandes/2ml-crm/pkg/errors"

	"github.com/gin-gonic/gin"
)

// sampleSize is how many connections /api/test echoes back
const sampleSize = 5

// ConnectionHandler 联系人 API 路由处理器
type ConnectionHandler struct {
	*Handler
}

// NewConnectionHandler 创建 ConnectionHandler 实例
func NewConnectionHandler(a *app.App) *ConnectionHandler {
	return &ConnectionHandler{Handler: NewHandler(a)}
}

// Test 返回联系人总数与前几条记录，用于确认导入结果
// @Router /api/test [get]
func (h *ConnectionHandler) Test(c *gin.Context) {
	list, err := h.App.ConnectionService.LoadConnections(c.Request.Context())
	if err != nil {
		h.fail(c, "ConnectionHandler.Test", err)
		return
	}
	sample := list
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	ok(c, gin.H{"count": len(list), "connections": dto.NewConnectionDTOs(sample)})
}

// List 获取全部联系人
// @Router /api/connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	list, err := h.App.ConnectionService.ListConnections(c.Request.Context())
	if err != nil {
		h.fail(c, "ConnectionHandler.List", err)
		return
	}
	ok(c, gin.H{"connections": dto.NewConnectionDTOs(list)})
}

// Get 获取联系人详情
// @Router /api/connections/{id} [get]
func (h *ConnectionHandler) Get(c *gin.Context) {
	conn, err := h.App.ConnectionService.GetConnection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "ConnectionHandler.Get", err)
		return
	}
	ok(c, gin.H{"connection": dto.NewConnectionDTO(conn)})
}

// Update changes either the status (clearing open reminders) or the free-text notes.
// A body carrying neither is rejected; status wins when both are present.
// Update 更新联系人状态或备注
// @Router /api/connections/{id} [patch]
func (h *ConnectionHandler) Update(c *gin.Context) {
	params := &dto.ConnectionUpdateRequest{}
	if !h.bind(c, "ConnectionHandler.Update", params) {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	switch {
	case params.Status != nil:
		res, err := h.App.ConnectionService.UpdateConnectionStatus(ctx, id, domain.ConnectionStatus(*params.Status))
		if err != nil {
			h.fail(c, "ConnectionHandler.Update.Status", err)
			return
		}
		ok(c, gin.H{"connection": dto.NewConnectionDTO(res.Connection), "clearedReminders": res.ClearedReminders})
	case params.Notes != nil:
		conn, err := h.App.ConnectionService.UpdateConnectionNotes(ctx, id, *params.Notes)
		if err != nil {
			h.fail(c, "ConnectionHandler.Update.Notes", err)
			return
		}
		ok(c, gin.H{"connection": dto.NewConnectionDTO(conn)})
	default:
		apperrors.ErrorResponse(c, code.ErrorInvalidUpdateData)
	}
}

// Activity 获取联系人时间线
// @Router /api/connections/{id}/activity [get]
func (h *ConnectionHandler) Activity(c *gin.Context) {
	list, err := h.App.ActivityService.GetConnectionActivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "ConnectionHandler.Activity", err)
		return
	}
	ok(c, gin.H{"activities": dto.NewActivityDTOs(list)})
}

// ByTags 按标签筛选联系人，tagIds 逗号分隔，mode 为 OR 或 AND
// @Router /api/connections-by-tags [get]
func (h *ConnectionHandler) ByTags(c *gin.Context) {
	params := &dto.ConnectionsByTagsRequest{}
	if !h.bind(c, "ConnectionHandler.ByTags", params) {
		return
	}
	ids := splitIDs(params.TagIDs)
	list, err := h.App.TagService.GetConnectionsByTags(c.Request.Context(), ids, domain.ParseTagMatchMode(params.Mode))
	if err != nil {
		h.fail(c, "ConnectionHandler.ByTags", err)
		return
	}
	ok(c, gin.H{"connections": dto.NewConnectionDTOs(list)})
}

func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
