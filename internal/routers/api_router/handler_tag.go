package api_router

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/dto"

	"github.com/gin-gonic/gin"
)

// TagHandler 标签 API 路由处理器
type TagHandler struct {
	*Handler
}

// NewTagHandler 创建 TagHandler 实例
func NewTagHandler(a *app.App) *TagHandler {
	return &TagHandler{Handler: NewHandler(a)}
}

// List 获取全部标签
// @Router /api/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.App.TagService.GetAllTags(c.Request.Context())
	if err != nil {
		h.fail(c, "TagHandler.List", err)
		return
	}
	ok(c, gin.H{"tags": dto.NewTagDTOs(tags)})
}

// Create 创建标签，同名标签已存在时直接返回
// @Router /api/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	params := &dto.TagCreateRequest{}
	if !h.bind(c, "TagHandler.Create", params) {
		return
	}
	tag, err := h.App.TagService.CreateTag(c.Request.Context(), params.Name)
	if err != nil {
		h.fail(c, "TagHandler.Create", err)
		return
	}
	ok(c, gin.H{"tag": dto.NewTagDTO(tag)})
}

// ConnectionTags 获取联系人的标签
// @Router /api/connections/{id}/tags [get]
func (h *TagHandler) ConnectionTags(c *gin.Context) {
	tags, err := h.App.TagService.GetConnectionTags(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "TagHandler.ConnectionTags", err)
		return
	}
	ok(c, gin.H{"tags": dto.NewTagDTOs(tags)})
}

// Attach 为联系人添加标签
// @Router /api/connections/{id}/tags [post]
func (h *TagHandler) Attach(c *gin.Context) {
	params := &dto.TagAttachRequest{}
	if !h.bind(c, "TagHandler.Attach", params) {
		return
	}
	if err := h.App.TagService.AddTagToConnection(c.Request.Context(), c.Param("id"), params.TagID); err != nil {
		h.fail(c, "TagHandler.Attach", err)
		return
	}
	ok(c, nil)
}

// Detach 移除联系人的标签
// @Router /api/connections/{id}/tags/{tagId} [delete]
func (h *TagHandler) Detach(c *gin.Context) {
	if err := h.App.TagService.RemoveTagFromConnection(c.Request.Context(), c.Param("id"), c.Param("tagId")); err != nil {
		h.fail(c, "TagHandler.Detach", err)
		return
	}
	ok(c, nil)
}
