package handler

import (
	"sync"

	"casebook/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the enum tags used by request structs to gin's
// validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("ledgertype", func(fl validator.FieldLevel) bool {
			return model.LedgerType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("casestatus", func(fl validator.FieldLevel) bool {
			return model.CaseStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("businesstype", func(fl validator.FieldLevel) bool {
			return model.BusinessType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("notetype", func(fl validator.FieldLevel) bool {
			return model.NoteType(fl.Field().String()).Valid()
		})
	})
}
