package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验结构体，只返回第一条失败的规则
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("field [%s] failed rule [%s]", firstError.Field(), firstError.Tag())
		}
		return err
	}
	return nil
}

// ValidateVar 校验单个值
func ValidateVar(field any, tag string) error {
	return validate.Var(field, tag)
}
