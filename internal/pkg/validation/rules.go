package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/uniactivity/internal/pkg/helpers"
)

// Validation rule patterns
var (
	// EmailPattern is matched against lowercased addresses
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsEmail reports whether value looks like an email address
func IsEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// Custom binding tags
const (
	TagISODate   = "isodate"   // YYYY-MM-DD
	TagTimestamp = "timestamp" // a timestamp or a bare date
)

func isISODate(fl validator.FieldLevel) bool {
	_, err := helpers.ParseDate(fl.Field().String())
	return err == nil
}

func isTimestamp(fl validator.FieldLevel) bool {
	_, err := helpers.ParseOptionalDateTime(fl.Field().String())
	return err == nil
}

// Register adds the custom tags to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagISODate, isISODate); err != nil {
		return fmt.Errorf("register %s: %w", TagISODate, err)
	}
	if err := v.RegisterValidation(TagTimestamp, isTimestamp); err != nil {
		return fmt.Errorf("register %s: %w", TagTimestamp, err)
	}
	return nil
}

var (
	ginOnce sync.Once
	ginErr  error
)

// RegisterGinValidators registers the custom tags on gin's default validator. Safe to call
// more than once.
func RegisterGinValidators() error {
	ginOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ginErr = fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
			return
		}
		ginErr = Register(v)
	})
	return ginErr
}
