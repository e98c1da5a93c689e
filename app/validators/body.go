package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/stock-tracker/pkg/colors"
	pkgerrors "github.com/mytheresa/stock-tracker/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return colors.IsHex(fl.Field().String())
	})
	return v
}

// Normalizer is implemented by request payloads that clean themselves up
// (trimming, defaults) before validation.
type Normalizer interface {
	Normalize()
}

// DecodeJSONBody decodes the request body into dest, normalizes it and runs the
// struct validation rules. An empty body decodes as an empty object.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	if n, ok := dest.(Normalizer); ok {
		n.Normalize()
	}
	return Struct(dest)
}

// Struct runs the validation rules declared on dest.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			msgs = append(msgs, fmt.Sprintf("%s %s", fieldErr.Field(), validationMessage(fieldErr)))
		}
		sort.Strings(msgs)
		return pkgerrors.New(pkgerrors.CodeValidation, strings.Join(msgs, "; "))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "rgbhex":
		return "must be a #RRGGBB color"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
