package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"vidio/internal/failures"
	"vidio/internal/ffargs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}
	if err := c.validateGIF(); err != nil {
		return err
	}
	if err := c.validateGrid(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFields() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("", err.Error())
	}
	fe := fieldErrs[0]
	// Namespace is "Config.encoding.crf"; drop the struct name.
	_, key, _ := strings.Cut(fe.Namespace(), ".")
	return invalid(key, describe(fe))
}

func (c *Config) validateGIF() error {
	if _, err := ffargs.ParseQuality(c.GIF.DefaultQuality); err != nil {
		return invalid("gif.default_quality", fmt.Sprintf("%q is not low, med, high or a number 1-10", c.GIF.DefaultQuality))
	}
	return nil
}

func (c *Config) validateGrid() error {
	if !ffargs.ValidColor(c.Grid.Background) {
		return invalid("grid.background", fmt.Sprintf("%q is not a colour name or hex value", c.Grid.Background))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return fmt.Sprintf("must be one of %s (got %v)", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func invalid(key, message string) error {
	return failures.Wrap(failures.ErrInvalidOption, "config", key, message, nil)
}
