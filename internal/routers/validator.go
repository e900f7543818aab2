package routers

import (
	"reflect"
	"strings"

	"github.com/zachlandes/2ml-crm/internal/dto"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
)

// SetupValidator configures gin's binding validator: json field names, en/zh translations
// and the CRM custom tags. The returned translator feeds the Lang middleware.
// SetupValidator 初始化校验器与翻译器
func SetupValidator() (*ut.UniversalTranslator, error) {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("gin binding validator is not validator/v10")
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	if err := dto.RegisterValidations(validate); err != nil {
		return nil, errors.Wrap(err, "register custom validations")
	}

	uni := ut.New(en.New(), en.New(), zh.New())
	enTran, _ := uni.GetTranslator("en")
	zhTran, _ := uni.GetTranslator("zh")

	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, err
	}
	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, err
	}

	custom := map[ut.Translator]string{
		enTran: "{0} must be one of new, contacted, responded, meeting, opportunity, closed",
		zhTran: "{0}必须是 new、contacted、responded、meeting、opportunity、closed 之一",
	}
	for trans, text := range custom {
		text := text
		err := validate.RegisterTranslation(dto.StatusTag, trans,
			func(t ut.Translator) error {
				return t.Add(dto.StatusTag, text, true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(dto.StatusTag, fe.Field())
				return msg
			})
		if err != nil {
			return nil, errors.Wrapf(err, "register %s translation", dto.StatusTag)
		}
	}

	return uni, nil
}
