package routers

import (
	"net/http"
	"net/http/pprof"

	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/middleware"
	"github.com/zachlandes/2ml-crm/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultPrefix url prefix of pprof
	DefaultPrefix = "/debug/pprof"
)

// NewPrivateRouter serves metrics, expvar and pprof on the private listener
// NewPrivateRouter 创建私有路由：prometheus、expvar 与 pprof
func NewPrivateRouter(appContainer *app.App) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

	api_router.PublishExpvars(appContainer)

	// prom监控
	r.GET("/debug/vars", api_router.Expvar)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	p := r.Group(DefaultPrefix)
	{
		p.GET("/", pprofHandler(pprof.Index))
		p.GET("/cmdline", pprofHandler(pprof.Cmdline))
		p.GET("/profile", pprofHandler(pprof.Profile))
		p.POST("/symbol", pprofHandler(pprof.Symbol))
		p.GET("/symbol", pprofHandler(pprof.Symbol))
		p.GET("/trace", pprofHandler(pprof.Trace))
		p.GET("/allocs", pprofHandler(pprof.Handler("allocs").ServeHTTP))
		p.GET("/block", pprofHandler(pprof.Handler("block").ServeHTTP))
		p.GET("/goroutine", pprofHandler(pprof.Handler("goroutine").ServeHTTP))
		p.GET("/heap", pprofHandler(pprof.Handler("heap").ServeHTTP))
		p.GET("/mutex", pprofHandler(pprof.Handler("mutex").ServeHTTP))
		p.GET("/threadcreate", pprofHandler(pprof.Handler("threadcreate").ServeHTTP))
	}

	r.NoRoute(middleware.NoFound())
	return r
}

func pprofHandler(h http.HandlerFunc) gin.HandlerFunc {
	handler := h
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
