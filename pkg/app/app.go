package app

import (
	"strings"

	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/gin-gonic/gin"
)

const (
	// LangKey gin context key holding the negotiated response language
	// LangKey 保存响应语言的 gin 上下文键
	LangKey = "lang"
	// TransKey gin context key holding the validator translator
	// TransKey 保存校验翻译器的 gin 上下文键
	TransKey = "trans"
	// StatusCodeKey gin context key holding the written result code
	StatusCodeKey = "status_code"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// Res is the failure body: {"success": false, "error": "..."}
// Res 失败响应体
type Res struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Code    int         `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToResponse writes codeObj to the client.
// Success codes spread a gin.H payload into the top-level object next to "success";
// any other payload lands under "data". Failure codes render Res.
// ToResponse 输出到客户端：成功时将 gin.H 负载平铺到顶层，失败时输出 Res
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set(StatusCodeKey, codeObj.Code())

	if !codeObj.Status() {
		content := Res{
			Success: false,
			Error:   codeObj.MsgIn(r.Ctx.GetString(LangKey)),
			Code:    codeObj.Code(),
		}
		if codeObj.HaveDetails() {
			content.Details = strings.Join(codeObj.Details(), ",")
		}
		if codeObj.HaveData() {
			content.Details = codeObj.Data()
		}
		r.send(codeObj.StatusCode(), content)
		return
	}

	content := gin.H{"success": true}
	if codeObj.HaveData() {
		switch data := codeObj.Data().(type) {
		case gin.H:
			for k, v := range data {
				content[k] = v
			}
		case map[string]interface{}:
			for k, v := range data {
				content[k] = v
			}
		default:
			content["data"] = data
		}
	}
	r.send(codeObj.StatusCode(), content)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
