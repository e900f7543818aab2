// Package code defines the typed result codes returned by services and handlers
// Package code 定义服务与处理器返回的类型化结果码
package code

import (
	"fmt"
	"net/http"
)

// Code is both a response descriptor and an error value.
// Registered codes are shared package variables, so every With* call returns a copy.
type Code struct {
	// 状态码
	code int
	// 是否成功
	status bool
	// HTTP 状态
	httpStatus int
	// 消息
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}

func register(c int, l lang) {
	if _, ok := codes[c]; ok {
		panic(fmt.Sprintf("code %d already registered", c))
	}
	codes[c] = l.en
}

// NewError registers a failure code
// NewError 注册失败码
func NewError(c int, httpStatus int, l lang) *Code {
	register(c, l)
	return &Code{code: c, status: false, httpStatus: httpStatus, Lang: l}
}

// NewSuss registers a success code
// NewSuss 注册成功码
func NewSuss(c int, l lang) *Code {
	register(c, l)
	return &Code{code: c, status: true, httpStatus: http.StatusOK, Lang: l}
}

// Clone returns a copy without data or details
// Clone 创建不含数据与详情的副本
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		Lang:       e.Lang,
	}
}

func (e *Code) Error() string {
	if e.haveDetails && len(e.details) > 0 {
		return fmt.Sprintf("%s: %v", e.Msg(), e.details)
	}
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

// Msg returns the English message
func (e *Code) Msg() string {
	return e.Lang.Get(FALLBACK_LNG)
}

// MsgIn returns the message in lng
func (e *Code) MsgIn(lng string) string {
	return e.Lang.Get(lng)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.copy()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// Is lets errors.Is match a detailed copy against its registered code
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == e.code
}

func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}

func (e *Code) copy() *Code {
	c := *e
	return &c
}
