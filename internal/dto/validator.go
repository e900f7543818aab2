package dto

import (
	"github.com/zachlandes/2ml-crm/internal/domain"

	"github.com/go-playground/validator/v10"
)

// StatusTag 联系人状态校验标签
const StatusTag = "crm_status"

// ValidateStatus reports whether the field holds a known connection status
func ValidateStatus(fl validator.FieldLevel) bool {
	return domain.ConnectionStatus(fl.Field().String()).Valid()
}

// RegisterValidations 注册自定义校验
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(StatusTag, ValidateStatus)
}
