package api_router

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/dto"

	"github.com/gin-gonic/gin"
)

// NotificationMessageSent is the notification type echoed by /api/messages/send
const NotificationMessageSent = "message_sent"

// MessageHandler 消息 API 路由处理器
type MessageHandler struct {
	*Handler
}

// NewMessageHandler 创建 MessageHandler 实例
func NewMessageHandler(a *app.App) *MessageHandler {
	return &MessageHandler{Handler: NewHandler(a)}
}

// List 获取联系人消息
// @Router /api/connections/{id}/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	list, err := h.App.MessageService.GetConnectionMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "MessageHandler.List", err)
		return
	}
	ok(c, gin.H{"messages": dto.NewMessageDTOs(list)})
}

// CreateAca 生成 ACA 草稿
// @Router /api/connections/{id}/messages/aca [post]
func (h *MessageHandler) CreateAca(c *gin.Context) {
	params := &dto.AcaMessageRequest{}
	if !h.bind(c, "MessageHandler.CreateAca", params) {
		return
	}
	msg, err := h.App.MessageService.CreateAcaMessage(c.Request.Context(), c.Param("id"), params.Acknowledgment, params.Compliment, params.Ask)
	if err != nil {
		h.fail(c, "MessageHandler.CreateAca", err)
		return
	}
	ok(c, gin.H{"message": dto.NewMessageDTO(msg)})
}

// CreateCustom 保存自定义草稿
// @Router /api/connections/{id}/messages/custom [post]
func (h *MessageHandler) CreateCustom(c *gin.Context) {
	params := &dto.CustomMessageRequest{}
	if !h.bind(c, "MessageHandler.CreateCustom", params) {
		return
	}
	msg, err := h.App.MessageService.ComposeCustomMessage(c.Request.Context(), c.Param("id"), params.Content)
	if err != nil {
		h.fail(c, "MessageHandler.CreateCustom", err)
		return
	}
	ok(c, gin.H{"message": dto.NewMessageDTO(msg)})
}

// Send 标记消息已发送
// @Router /api/messages/send [post]
func (h *MessageHandler) Send(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "MessageHandler.Send", params) {
		return
	}
	msg, err := h.App.MessageService.MarkMessageAsSent(c.Request.Context(), params.ID)
	if err != nil {
		h.fail(c, "MessageHandler.Send", err)
		return
	}
	ok(c, gin.H{
		"message": dto.NewMessageDTO(msg),
		"notification": dto.SentNotification{
			Type:    NotificationMessageSent,
			Message: "Message marked as sent",
		},
	})
}
