package middleware

import (
	"github.com/zachlandes/2ml-crm/pkg/app"
	"github.com/zachlandes/2ml-crm/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator picks the response language from ?lang, the lang header or Accept-Language,
// in that order, and stores it with the matching validator translator.
// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		lang = code.NormalizeLang(lang)

		// 翻译器以 "zh" / "en" 注册
		transKey := "en"
		if lang == code.LangZH {
			transKey = "zh"
		}
		if trans, found := uni.GetTranslator(transKey); found {
			c.Set(app.TransKey, trans)
		}
		c.Set(app.LangKey, lang)

		c.Next()
	}
}
