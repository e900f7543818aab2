package api_router

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zachlandes/2ml-crm/internal/app"

	"github.com/gin-gonic/gin"
)

var (
	publishOnce sync.Once
	// current is swapped on hot reload so the published funcs follow the live container
	current atomic.Pointer[app.App]
)

// PublishExpvars registers process-level counters under /debug/vars.
// expvar names are global, so later calls only swap the container they read from.
// PublishExpvars 注册 expvar 指标，重复调用只替换数据来源
func PublishExpvars(a *app.App) {
	current.Store(a)
	publishOnce.Do(func() {
		expvar.Publish("crm_uptime_seconds", expvar.Func(func() any {
			return current.Load().Uptime().Seconds()
		}))
		expvar.Publish("crm_ws_clients", expvar.Func(func() any {
			if hub := current.Load().WSHub; hub != nil {
				return hub.ClientCount()
			}
			return 0
		}))
		expvar.Publish("crm_worker_pool", expvar.Func(func() any {
			return current.Load().WorkerPool().GetMetrics()
		}))
		expvar.Publish("crm_write_queues", expvar.Func(func() any {
			return current.Load().WriteQueueManager().QueueCount()
		}))
	})
}

// Expvar 导出系统运行时指标
func Expvar(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	first := true
	report := func(key string, value any) {
		if !first {
			fmt.Fprintf(c.Writer, ",\n")
		}
		first = false
		if str, ok := value.(string); ok {
			fmt.Fprintf(c.Writer, "%q: %q", key, str)
		} else {
			fmt.Fprintf(c.Writer, "%q: %v", key, value)
		}
	}

	fmt.Fprintf(c.Writer, "{\n")
	expvar.Do(func(kv expvar.KeyValue) {
		report(kv.Key, kv.Value)
	})
	fmt.Fprintf(c.Writer, "\n}\n")
}
