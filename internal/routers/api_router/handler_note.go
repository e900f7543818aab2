package api_router

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/internal/dto"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// List 获取联系人笔记
// @Router /api/connections/{id}/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.App.ConnectionService.GetConnectionNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "NoteHandler.List", err)
		return
	}
	ok(c, gin.H{"notes": dto.NewNoteDTOs(notes)})
}

// Create 添加笔记
// @Router /api/connections/{id}/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	params := &dto.NoteCreateRequest{}
	if !h.bind(c, "NoteHandler.Create", params) {
		return
	}
	noteType := domain.NoteType(params.Type)
	if noteType == "" {
		noteType = domain.NoteTypeNote
	}
	id, err := h.App.ConnectionService.AddConnectionNote(c.Request.Context(), c.Param("id"), params.Content, noteType)
	if err != nil {
		h.fail(c, "NoteHandler.Create", err)
		return
	}
	ok(c, gin.H{"id": id})
}

// Delete 删除笔记，系统生成的笔记不可删除
// @Router /api/notes/delete [post]
func (h *NoteHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "NoteHandler.Delete", params) {
		return
	}
	if err := h.App.ConnectionService.DeleteNote(c.Request.Context(), params.ID); err != nil {
		h.fail(c, "NoteHandler.Delete", err)
		return
	}
	ok(c, nil)
}
