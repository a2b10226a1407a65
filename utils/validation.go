package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slipDatePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/[0-9]{4}$|^(0[1-9]|[12][0-9]|3[01])-(0[1-9]|1[0-2])-[0-9]{4}$`)
	slipTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	clockPattern    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Slip amounts are bounded to what a single transfer slip can plausibly carry.
const (
	MinSlipAmount = 0
	MaxSlipAmount = 10_000_000
)

// IsSlipDate accepts DD/MM/YYYY or DD-MM-YYYY.
func IsSlipDate(s string) bool { return slipDatePattern.MatchString(s) }

// IsSlipTime accepts HH:MM or HH:MM:SS.
func IsSlipTime(s string) bool { return slipTimePattern.MatchString(s) }

// IsClock accepts HH:MM only.
func IsClock(s string) bool { return clockPattern.MatchString(s) }

// IsSlipAmount reports whether amount lies in [0, 10,000,000].
func IsSlipAmount(amount float64) bool {
	return amount >= MinSlipAmount && amount <= MaxSlipAmount
}

// RegisterValidators adds the custom tags used by request structs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"slipdate": IsSlipDate,
		"sliptime": IsSlipTime,
		"clock":    IsClock,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
