// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	App    AppServiceConfig    // App related config // 应用相关配置
	Import ImportServiceConfig // CSV import config // 导入相关配置
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	Signature     string // Sign-off line appended to ACA messages // ACA 消息落款
	UpcomingLimit int    // Default limit for upcoming reminders // 即将到期提醒默认数量
}

// ImportServiceConfig 导入配置
type ImportServiceConfig struct {
	CSVPath   string // Path of the LinkedIn export // 导出文件路径
	SkipLines int    // Preamble lines above the header // 表头前的说明行数
}

func (c *ServiceConfig) signature() string {
	if c == nil || c.App.Signature == "" {
		return "Zach"
	}
	return c.App.Signature
}

func (c *ServiceConfig) upcomingLimit() int {
	if c == nil || c.App.UpcomingLimit <= 0 {
		return 10
	}
	return c.App.UpcomingLimit
}
