package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/realty-marketplace/internal/pagination"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so field errors match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs tag validation and converts failures into FieldErrors.
func checkStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return out
}

// fieldPath drops the struct name from the namespace: PropertyInput.image_urls[0] -> image_urls[0].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "alpha":
		return "must contain letters only"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func normalizePage(p pagination.PageRequest) pagination.PageRequest {
	p = p.Normalize()
	if p.PerPage > pagination.MaxPerPage {
		p.PerPage = pagination.MaxPerPage
	}
	if p.Page > pagination.MaxPage {
		p.Page = pagination.MaxPage
	}
	return p
}

func positiveID(id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// slugify keeps ASCII letters and digits, joining runs of anything else with a dash.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(slugInvalid.ReplaceAllString(s, "-"), "-")
}

var slugFormat = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func isValidSlug(s string) bool { return slugFormat.MatchString(s) }
