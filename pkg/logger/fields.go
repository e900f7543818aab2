package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldConnectionID 联系人 ID 字段
	FieldConnectionID = "connectionId"

	// FieldReminderID 提醒 ID 字段
	FieldReminderID = "reminderId"

	// FieldMessageID 消息 ID 字段
	FieldMessageID = "messageId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldStatus 状态字段
	FieldStatus = "status"

	// FieldPath 文件路径字段
	FieldPath = "path"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldTask 任务名称字段
	FieldTask = "task"
)
