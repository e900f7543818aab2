package routers

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/middleware"
	"github.com/zachlandes/2ml-crm/internal/routers/api_router"
	"github.com/zachlandes/2ml-crm/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter builds the public API engine
// NewRouter 创建对外 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		if cfg.Limiter.Enabled {
			api.Use(middleware.RateLimiter(limiter.NewIPLimiter(cfg.GetLimiterRule())))
		}
		api.Use(middleware.ContextTimeout(cfg.ContextTimeout()))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.Metrics())
		api.Use(middleware.AccessLogWithLogger(lg))
		api.Use(middleware.RecoveryWithLogger(lg))

		connectionHandler := api_router.NewConnectionHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		messageHandler := api_router.NewMessageHandler(appContainer)
		tagHandler := api_router.NewTagHandler(appContainer)
		reminderHandler := api_router.NewReminderHandler(appContainer)
		actionHandler := api_router.NewActionHandler(appContainer)
		pipelineHandler := api_router.NewPipelineHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/test", connectionHandler.Test)
		api.GET("/health", healthHandler.Check)
		api.GET("/version", healthHandler.Version)

		// 联系人
		api.GET("/connections", connectionHandler.List)
		api.GET("/connections/:id", connectionHandler.Get)
		api.PATCH("/connections/:id", connectionHandler.Update)
		api.GET("/connections/:id/activity", connectionHandler.Activity)
		api.GET("/connections-by-tags", connectionHandler.ByTags)

		// 笔记
		api.GET("/connections/:id/notes", noteHandler.List)
		api.POST("/connections/:id/notes", noteHandler.Create)
		api.POST("/notes/delete", noteHandler.Delete)

		// 消息
		api.GET("/connections/:id/messages", messageHandler.List)
		api.POST("/connections/:id/messages/aca", messageHandler.CreateAca)
		api.POST("/connections/:id/messages/custom", messageHandler.CreateCustom)
		api.POST("/messages/send", messageHandler.Send)

		// 标签
		api.GET("/tags", tagHandler.List)
		api.POST("/tags", tagHandler.Create)
		api.GET("/connections/:id/tags", tagHandler.ConnectionTags)
		api.POST("/connections/:id/tags", tagHandler.Attach)
		api.DELETE("/connections/:id/tags/:tagId", tagHandler.Detach)

		// 商机与推荐
		api.GET("/connections/:id/opportunities", pipelineHandler.ListOpportunities)
		api.POST("/connections/:id/opportunities", pipelineHandler.CreateOpportunity)
		api.PUT("/opportunities/update", pipelineHandler.UpdateOpportunity)
		api.DELETE("/opportunities/delete", pipelineHandler.DeleteOpportunity)
		api.GET("/connections/:id/referrals", pipelineHandler.ListReferrals)
		api.POST("/connections/:id/referrals", pipelineHandler.CreateReferral)

		// 提醒
		api.POST("/reminders/add", reminderHandler.Create)
		api.PUT("/reminders/update", reminderHandler.Update)
		api.POST("/reminders/complete", reminderHandler.Complete)
		api.POST("/reminders/uncomplete", reminderHandler.Uncomplete)
		api.DELETE("/reminders/delete", reminderHandler.Delete)
		api.GET("/reminders/today", reminderHandler.Today)
		api.GET("/reminders/overdue", reminderHandler.Overdue)
		api.GET("/reminders/upcoming", reminderHandler.Upcoming)
		api.GET("/reminders/connection/:id", reminderHandler.ByConnection)

		// 行为计数
		api.GET("/actions", actionHandler.List)
		api.POST("/actions", actionHandler.Track)
		api.GET("/actions/count", actionHandler.Count)

		// 提醒推送
		if appContainer.WSHub != nil {
			api.GET("/ws/notify", appContainer.WSHub.Run())
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}
