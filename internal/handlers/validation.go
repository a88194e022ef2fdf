package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the "currency" and "category" tags to gin's validator.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseCurrency(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseCategory(fl.Field().String())
			return err == nil
		})
	})
}
