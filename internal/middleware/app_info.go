package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppVersionHeader 响应头中的版本号
const AppVersionHeader = "X-App-Version"

// AppInfoWithConfig stores the app name and version on the context and echoes the version header
func AppInfoWithConfig(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Header(AppVersionHeader, version)

		c.Next()
	}
}
