package ffargs

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"vidio/internal/failures"
)

var (
	colorPattern = regexp.MustCompile(`^([A-Za-z]+|(#|0x)[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?)(@(0(\.[0-9]+)?|1(\.0+)?))?$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.TrimSpace(field.Tag.Get("flag"))
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "ffcolor", func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "ffname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidColor reports whether value is a colour ffmpeg filters accept
// (a name, #RRGGBB[AA] or 0xRRGGBB[AA], optionally with @alpha).
func ValidColor(value string) bool {
	return colorPattern.MatchString(value)
}

// checkStruct runs the struct-tag range checks and reports the first failure
// against its CLI flag.
func checkStruct(command string, opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return failures.Wrap(failures.ErrInvalidOption, command, "", "invalid options", err)
	}
	fe := fieldErrs[0]
	return failures.Wrap(failures.ErrInvalidOption, command, "--"+fe.Field(), describe(fe), nil)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "ffcolor":
		return fmt.Sprintf("%q is not a colour name or hex value such as #1a1a1a", fe.Value())
	case "ffname":
		return fmt.Sprintf("%q contains characters not allowed in a codec or preset name", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func conflict(command, flag, other string) error {
	return failures.Wrap(failures.ErrConflictingOptions, command, flag, "cannot be combined with "+other, nil)
}

func requireInputs(command string, inputs []string, min int) error {
	if len(inputs) < min {
		return failures.Wrap(failures.ErrIncompatibleInputs, command, "", fmt.Sprintf("requires at least %d inputs, got %d", min, len(inputs)), nil)
	}
	for i, in := range inputs {
		if strings.TrimSpace(in) == "" {
			return failures.Wrap(failures.ErrInvalidOption, command, "", fmt.Sprintf("input %d is empty", i+1), nil)
		}
	}
	return nil
}

func requireOutput(command, output string) error {
	if strings.TrimSpace(output) == "" {
		return failures.Wrap(failures.ErrInvalidOption, command, "", "output path is required", nil)
	}
	return nil
}

// withOutput appends the overwrite flag and the destination.
func withOutput(args []string, output string) []string {
	return append(args, "-y", output)
}
