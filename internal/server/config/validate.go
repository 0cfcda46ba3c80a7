package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			e := ve[0]
			return fmt.Errorf("config %s: validation failed on '%s' tag (value: %v)", e.Field(), e.Tag(), e.Value())
		}
		return err
	}
	return nil
}
