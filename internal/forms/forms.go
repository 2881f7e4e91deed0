// Package forms binds and validates user input for the create and update views.
package forms

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key under which errors not tied to a single field are reported.
const NonFieldErrors = "__all__"

const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidTime   = "Enter a valid date/time."
)

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether at least one error was recorded.
func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], " ")))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// cleaner is implemented by forms that need checks beyond struct tags.
type cleaner interface {
	clean(errs Errors)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the form's struct tags and its own cleaning rules. It
// returns nil when the form is valid.
func Validate(form interface{}) Errors {
	errs := Errors{}
	if err := getValidator().Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			errs.Add(NonFieldErrors, err.Error())
			return errs
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), message(fe))
		}
	}
	if c, ok := form.(cleaner); ok {
		c.clean(errs)
	}
	if errs.Any() {
		return errs
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

// timeLayouts are the accepted input formats for date/time fields.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
