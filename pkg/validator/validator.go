// Package validator 在gin的binding引擎上注册自定义校验tag,并把校验错误转换为可读消息
//
// 使用示例:
//
//	validator.Register(map[string]validator.Rule{
//	    "book_type": func(s string) bool { _, ok := book.ParseType(s); return ok },
//	})
//
//	type Req struct {
//	    Type string `json:"type" binding:"required,book_type"`
//	}
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Rule 字符串字段的校验规则
type Rule func(value string) bool

// Register 向gin默认的validator注册自定义规则
// 同时让错误中的字段名使用json/form tag,而不是Go字段名
func Register(rules map[string]Rule) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding引擎不是validator/v10")
	}
	return register(v, rules)
}

// New 创建独立的validator实例(不经过gin绑定时使用)
func New(rules map[string]Rule) (*validator.Validate, error) {
	v := validator.New()
	if err := register(v, rules); err != nil {
		return nil, err
	}
	return v, nil
}

func register(v *validator.Validate, rules map[string]Rule) error {
	v.RegisterTagNameFunc(fieldName)
	for tag, rule := range rules {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			return rule(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("注册校验规则%s失败: %w", tag, err)
		}
	}
	return nil
}

// fieldName 优先使用json tag,其次form tag
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Message 把绑定错误转换为中文提示
// 只返回第一个字段的错误,非校验错误(如JSON格式错误)原样返回
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + "不能为空"
	case "min":
		return fmt.Sprintf("%s不能小于%s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s不能超过%s", field, fe.Param())
	case "email":
		return field + "邮箱格式不正确"
	case "oneof":
		return fmt.Sprintf("%s必须是以下之一: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s日期格式必须是%s", field, fe.Param())
	default:
		return fmt.Sprintf("%s校验失败(%s)", field, fe.Tag())
	}
}
