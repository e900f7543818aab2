package api_router

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/zachlandes/2ml-crm/internal/app"
	pkgapp "github.com/zachlandes/2ml-crm/pkg/app"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// MemoryInfo 内存占用
type MemoryInfo struct {
	// HeapAlloc Go 堆已分配字节
	HeapAlloc uint64 `json:"heapAlloc"`
	// Sys Go 运行时向系统申请的字节
	Sys uint64 `json:"sys"`
	// RSS 进程常驻内存，取不到时为 0
	RSS uint64 `json:"rss"`
	// SystemUsedPercent 系统内存使用率
	SystemUsedPercent float64 `json:"systemUsedPercent"`
	NumGoroutine      int     `json:"numGoroutine"`
}

// Check 健康检查接口，数据库不可用时返回 503
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := "healthy"
	database := "connected"

	if sqlDB, err := h.App.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "unhealthy"
		database = "error"
	}

	payload := gin.H{
		"status":   status,
		"database": database,
		"version":  h.App.Version().Version,
		"uptime":   h.App.Uptime().Seconds(),
		"memory":   readMemory(),
	}
	if status != "healthy" {
		payload["success"] = false
		c.JSON(http.StatusServiceUnavailable, payload)
		return
	}
	ok(c, payload)
}

// Version 返回服务端版本信息
// @Router /api/version [get]
func (h *HealthHandler) Version(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(gin.H{
		"name":      app.Name,
		"version":   app.Version,
		"gitTag":    app.GitTag,
		"buildTime": app.BuildTime,
		"startTime": h.App.StartTime.Format(time.RFC3339),
	}))
}

func readMemory() MemoryInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	info := MemoryInfo{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGoroutine: runtime.NumGoroutine(),
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			info.RSS = mi.RSS
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		info.SystemUsedPercent = vm.UsedPercent
	}
	return info
}
