package api_router

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/dto"
	pkgapp "github.com/zachlandes/2ml-crm/pkg/app"
	"github.com/zachlandes/2ml-crm/pkg/code"
	apperrors "github.com/zachlandes/2ml-crm/pkg/errors"
	"github.com/zachlandes/2ml-crm/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler 提醒 API 路由处理器
type ReminderHandler struct {
	*Handler
}

// NewReminderHandler 创建 ReminderHandler 实例
func NewReminderHandler(a *app.App) *ReminderHandler {
	return &ReminderHandler{Handler: NewHandler(a)}
}

// Create 创建提醒
// @Router /api/reminders/add [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	params := &dto.ReminderCreateRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		h.App.Logger().Warn("ReminderHandler.Create.BindAndValid err", zap.Error(errs))
		apperrors.ErrorResponse(c, code.ErrorReminderFieldsEmpty.WithDetails(errs.ErrorsToString()))
		return
	}
	due, err := util.ParseDueDate(params.DueDate)
	if err != nil {
		apperrors.ErrorResponse(c, code.ErrorInvalidDueDate.WithDetails(params.DueDate))
		return
	}
	r, err := h.App.ReminderService.CreateReminder(c.Request.Context(), params.ConnectionID, params.Title, due, params.Description)
	if err != nil {
		h.fail(c, "ReminderHandler.Create", err)
		return
	}
	ok(c, gin.H{"reminder": dto.NewReminderDTO(r)})
}

// Update 部分更新提醒
// @Router /api/reminders/update [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	params := &dto.ReminderUpdateRequest{}
	if !h.bind(c, "ReminderHandler.Update", params) {
		return
	}
	u, err := params.Updates.ToDomain()
	if err != nil {
		apperrors.ErrorResponse(c, code.ErrorInvalidDueDate.WithDetails(err.Error()))
		return
	}
	r, err := h.App.ReminderService.UpdateReminder(c.Request.Context(), params.ID, u)
	if err != nil {
		h.fail(c, "ReminderHandler.Update", err)
		return
	}
	ok(c, gin.H{"reminder": dto.NewReminderDTO(r)})
}

// Complete 完成提醒
// @Router /api/reminders/complete [post]
func (h *ReminderHandler) Complete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "ReminderHandler.Complete", params) {
		return
	}
	r, err := h.App.ReminderService.CompleteReminder(c.Request.Context(), params.ID)
	if err != nil {
		h.fail(c, "ReminderHandler.Complete", err)
		return
	}
	ok(c, gin.H{"reminder": dto.NewReminderDTO(r)})
}

// Uncomplete 取消完成
// @Router /api/reminders/uncomplete [post]
func (h *ReminderHandler) Uncomplete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "ReminderHandler.Uncomplete", params) {
		return
	}
	r, err := h.App.ReminderService.UncompleteReminder(c.Request.Context(), params.ID)
	if err != nil {
		h.fail(c, "ReminderHandler.Uncomplete", err)
		return
	}
	ok(c, gin.H{"reminder": dto.NewReminderDTO(r)})
}

// Delete 删除提醒
// @Router /api/reminders/delete [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "ReminderHandler.Delete", params) {
		return
	}
	if err := h.App.ReminderService.DeleteReminder(c.Request.Context(), params.ID); err != nil {
		h.fail(c, "ReminderHandler.Delete", err)
		return
	}
	ok(c, nil)
}

// Today 今天到期的提醒
// @Router /api/reminders/today [get]
func (h *ReminderHandler) Today(c *gin.Context) {
	list, err := h.App.ReminderService.GetTodayReminders(c.Request.Context())
	if err != nil {
		h.fail(c, "ReminderHandler.Today", err)
		return
	}
	ok(c, gin.H{"reminders": dto.NewReminderDTOs(list)})
}

// Overdue 已逾期的提醒
// @Router /api/reminders/overdue [get]
func (h *ReminderHandler) Overdue(c *gin.Context) {
	list, err := h.App.ReminderService.GetOverdueReminders(c.Request.Context())
	if err != nil {
		h.fail(c, "ReminderHandler.Overdue", err)
		return
	}
	ok(c, gin.H{"reminders": dto.NewReminderDTOs(list)})
}

// Upcoming 即将到期的提醒，limit 缺省时使用配置值
// @Router /api/reminders/upcoming [get]
func (h *ReminderHandler) Upcoming(c *gin.Context) {
	params := &dto.UpcomingRequest{}
	if !h.bind(c, "ReminderHandler.Upcoming", params) {
		return
	}
	list, err := h.App.ReminderService.GetUpcomingReminders(c.Request.Context(), params.Limit)
	if err != nil {
		h.fail(c, "ReminderHandler.Upcoming", err)
		return
	}
	ok(c, gin.H{"reminders": dto.NewReminderDTOs(list)})
}

// ByConnection 获取联系人的提醒
// @Router /api/reminders/connection/{id} [get]
func (h *ReminderHandler) ByConnection(c *gin.Context) {
	list, err := h.App.ReminderService.GetConnectionReminders(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "ReminderHandler.ByConnection", err)
		return
	}
	ok(c, gin.H{"reminders": dto.NewReminderDTOs(list)})
}
