package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"staybook/internal/service"
	"staybook/internal/utils"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding validators used by request models
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			return utils.ValidateDate(fl.Field().String())
		})
	})
}

// reservationFieldMessages maps request fields to the form message shown for them
var reservationFieldMessages = map[string]string{
	"CheckinDate": service.MsgInvalidDate,
	"Duration":    service.MsgInvalidDuration,
	"Guests":      service.MsgInvalidGuests,
}

// reservationMessages converts binding failures into booking form messages
func reservationMessages(errs validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(errs))
	seen := make(map[string]bool, len(errs))
	for _, fe := range errs {
		msg, ok := reservationFieldMessages[fe.StructField()]
		if !ok {
			msg = fe.Error()
		}
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
