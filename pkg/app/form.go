package app

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString joins all messages
// ErrorsToString 拼接全部错误信息
func (v ValidErrors) ErrorsToString() string {
	return v.Error()
}

// MapsToString keys each message by field name
// MapsToString 以字段名为键输出错误信息
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds the request (JSON body or query) into obj and runs the validator.
// Validation messages are translated with the translator the Lang middleware stored.
// BindAndValid 绑定请求参数并校验，错误信息使用 Lang 中间件注入的翻译器翻译
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	var err error
	if c.Request.Method == "GET" || (c.Request.Method == "DELETE" && c.Request.ContentLength == 0) {
		err = c.ShouldBindWith(obj, binding.Query)
	} else {
		err = c.ShouldBind(obj)
	}
	if err == nil {
		return true, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	trans, _ := c.Value(TransKey).(ut.Translator)
	for _, ve := range verrs {
		msg := ve.Error()
		if trans != nil {
			msg = ve.Translate(trans)
		}
		errs = append(errs, &ValidError{Key: ve.Field(), Message: msg})
	}
	return false, errs
}
