package v1

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

// bodyValidator checks request DTOs and reports failures as errs.ErrInvalid
// listing each failing field by its JSON name.
type bodyValidator struct {
	v   *validator.Validate
	now func() time.Time
}

func newBodyValidator(now func() time.Time) *bodyValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Dates validate as their time value; ids as their string form with
	// the nil uuid counting as empty.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(catalog.Date).Time
	}, catalog.Date{})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		id := f.Interface().(uuid.UUID)
		if id == uuid.Nil {
			return ""
		}
		return id.String()
	}, uuid.UUID{})

	bv := &bodyValidator{v: v, now: now}
	_ = v.RegisterValidation("past", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && (t.IsZero() || t.Before(catalog.DateOf(bv.now()).Time))
	})
	_ = v.RegisterValidation("pastorpresent", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && (t.IsZero() || !t.After(catalog.DateOf(bv.now()).Time))
	})
	_ = v.RegisterValidation("imdb", func(fl validator.FieldLevel) bool {
		return catalog.IsImdbID(fl.Field().String())
	})
	return bv
}

func (b *bodyValidator) Validate(s any) error {
	if err := b.v.Struct(s); err != nil {
		return formatValidation(err)
	}
	return nil
}

func formatValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Invalid("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Field()+" "+friendlyMessage(e))
	}
	sort.Strings(msgs)
	return errs.Invalid("%s", strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	unit := "characters"
	if k := e.Kind(); k == reflect.Slice || k == reflect.Array || k == reflect.Map {
		unit = "items"
	}
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must contain at least %s %s", e.Param(), unit)
	case "max":
		return fmt.Sprintf("must not exceed %s %s", e.Param(), unit)
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "past":
		return "must be in the past"
	case "pastorpresent":
		return "must be today or in the past"
	case "imdb":
		return "must match tt followed by 6 to 9 digits"
	default:
		return "is invalid"
	}
}
