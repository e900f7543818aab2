package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal   = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams    = NewError(501, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotFoundAPI      = NewError(502, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests  = NewError(503, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery          = NewError(504, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorWriteQueueFailed = NewError(505, http.StatusInternalServerError, lang{en: "Write could not be scheduled", zh_cn: "写入任务调度失败"})
)

// Connections // 联系人
var (
	ErrorConnectionNotFound  = NewError(1001, http.StatusNotFound, lang{en: "Connection not found", zh_cn: "联系人不存在"})
	ErrorInvalidUpdateData   = NewError(1002, http.StatusBadRequest, lang{en: "Invalid update data", zh_cn: "无效的更新数据"})
	ErrorInvalidStatus       = NewError(1003, http.StatusBadRequest, lang{en: "Invalid connection status", zh_cn: "无效的联系人状态"})
	ErrorStatusUpdateFailed  = NewError(1004, http.StatusInternalServerError, lang{en: "Failed to update connection status", zh_cn: "更新联系人状态失败"})
	ErrorReminderClearFailed = NewError(1005, http.StatusInternalServerError, lang{en: "Status updated but open reminders could not be cleared", zh_cn: "状态已更新，但未能清除待办提醒"})
	ErrorNotesUpdateFailed   = NewError(1006, http.StatusInternalServerError, lang{en: "Failed to update notes", zh_cn: "更新备注失败"})
	ErrorImportFailed        = NewError(1007, http.StatusInternalServerError, lang{en: "Failed to import connections", zh_cn: "导入联系人失败"})
)

// Notes // 笔记
var (
	ErrorNoteNotFound     = NewError(1101, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteNotDeletable = NewError(1102, http.StatusBadRequest, lang{en: "This note type cannot be deleted", zh_cn: "该类型笔记不可删除"})
	ErrorNoteContentEmpty = NewError(1103, http.StatusBadRequest, lang{en: "Note content is required", zh_cn: "笔记内容不能为空"})
	ErrorInvalidNoteType  = NewError(1104, http.StatusBadRequest, lang{en: "Invalid note type", zh_cn: "无效的笔记类型"})
	ErrorNoteDeleteFailed = NewError(1105, http.StatusInternalServerError, lang{en: "Failed to delete note", zh_cn: "删除笔记失败"})
)

// Messages // 消息
var (
	ErrorMessageNotFound   = NewError(1201, http.StatusNotFound, lang{en: "Message not found", zh_cn: "消息不存在"})
	ErrorMessageSendFailed = NewError(1202, http.StatusInternalServerError, lang{en: "Failed to mark message as sent", zh_cn: "标记消息已发送失败"})
	ErrorMessageSaveFailed = NewError(1203, http.StatusInternalServerError, lang{en: "Failed to save message", zh_cn: "保存消息失败"})
)

// Tags // 标签
var (
	ErrorTagNotFound    = NewError(1301, http.StatusNotFound, lang{en: "Tag not found", zh_cn: "标签不存在"})
	ErrorTagIDsRequired = NewError(1302, http.StatusBadRequest, lang{en: "Tag IDs are required", zh_cn: "标签 ID 不能为空"})
	ErrorTagNameEmpty   = NewError(1303, http.StatusBadRequest, lang{en: "Tag name is required", zh_cn: "标签名称不能为空"})
)

// Reminders // 提醒
var (
	ErrorReminderNotFound    = NewError(1401, http.StatusNotFound, lang{en: "Reminder not found", zh_cn: "提醒不存在"})
	ErrorReminderFieldsEmpty = NewError(1402, http.StatusBadRequest, lang{en: "Missing required fields", zh_cn: "缺少必填字段"})
	ErrorInvalidDueDate      = NewError(1403, http.StatusBadRequest, lang{en: "Invalid due date", zh_cn: "无效的截止日期"})
)

// Actions // 操作统计
var (
	ErrorInvalidActionType = NewError(1501, http.StatusBadRequest, lang{en: "Invalid action type", zh_cn: "无效的操作类型"})
)

// Pipeline // 商机与推荐
var (
	ErrorOpportunityNotFound   = NewError(1601, http.StatusNotFound, lang{en: "Opportunity not found", zh_cn: "商机不存在"})
	ErrorInvalidProbability    = NewError(1602, http.StatusBadRequest, lang{en: "Probability must be between 0 and 100", zh_cn: "概率必须在 0 到 100 之间"})
	ErrorReferralNameRequired  = NewError(1603, http.StatusBadRequest, lang{en: "Referred name is required", zh_cn: "被推荐人姓名不能为空"})
	ErrorOpportunityTitleEmpty = NewError(1604, http.StatusBadRequest, lang{en: "Opportunity title is required", zh_cn: "商机标题不能为空"})
)
