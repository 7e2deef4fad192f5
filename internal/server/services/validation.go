package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(listingRules, models.Listing{})
	return v
}

// listingRules holds the cross-field constraints struct tags cannot express.
func listingRules(sl validator.StructLevel) {
	l := sl.Current().Interface().(models.Listing)
	if l.Offer && l.DiscountPrice >= l.RegularPrice {
		sl.ReportError(l.DiscountPrice, "discountPrice", "DiscountPrice", "ltfield", "regularPrice")
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", fe.Field(), fe.Param(), unit(fe.Kind()))
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", fe.Field(), fe.Param(), unit(fe.Kind()))
	case "ltfield":
		return fmt.Sprintf("%s must be lower than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func unit(k reflect.Kind) string {
	switch k {
	case reflect.Slice:
		return " item(s)"
	case reflect.String:
		return " character(s)"
	default:
		return ""
	}
}

// validateStruct runs the struct tags of v and turns failures into a
// common.ErrorValidation listing every offending field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return common.NewError(common.ErrorValidation, strings.Join(msgs, "; "))
}
