// Package validation 注册排课相关的自定义绑定校验标签
package validation

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"campus-planner/backend/internal/planning"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register 在 gin 默认校验器上注册 weekday / slot / section_type 标签，重复调用只生效一次
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("gin 校验引擎不是 validator/v10")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn 在指定校验器上注册自定义标签
func RegisterOn(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"weekday":      planning.IsWeekday,
		"slot":         planning.IsSlot,
		"section_type": planning.IsSectionType,
	}
	for tag, fn := range rules {
		fn := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			return fmt.Errorf("注册校验标签 %s 失败: %w", tag, err)
		}
	}
	return nil
}
