package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

const (
	// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
)

type traceIDCtxKey struct{}

// TraceMiddlewareWithConfig reads or generates a trace id, stores it on both contexts and
// echoes it in the response header. With spans enabled it also starts an opentracing
// server span, so gorm queries made with the request context nest under it.
// TraceMiddlewareWithConfig 创建请求追踪中间件
func TraceMiddlewareWithConfig(spans bool, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultTraceIDHeader
	}
	return func(c *gin.Context) {
		traceID := c.GetHeader(header)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(TraceIDKey, traceID)
		ctx := context.WithValue(c.Request.Context(), traceIDCtxKey{}, traceID)
		c.Header(header, traceID)

		if spans {
			tracer := opentracing.GlobalTracer()
			parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header))
			span := tracer.StartSpan(c.Request.Method+" "+c.FullPath(), ext.RPCServerOption(parent))
			span.SetTag("trace_id", traceID)
			ext.HTTPMethod.Set(span, c.Request.Method)
			ext.HTTPUrl.Set(span, c.Request.URL.Path)
			defer func() {
				ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
				span.Finish()
			}()
			ctx = opentracing.ContextWithSpan(ctx, span)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// GetTraceIDFromGin 从 gin.Context 获取 Trace ID
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, exists := c.Get(TraceIDKey); exists {
		if traceID, ok := id.(string); ok {
			return traceID
		}
	}
	return ""
}
