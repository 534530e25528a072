// internal/app/system/inputval/inputval.go
//
// Package inputval validates handler input structs via `validate` tags.
// Rules are deliberately few: the ones this app actually uses.
//
// Supported rules (comma-separated in the tag):
//
//	required        non-empty after trimming (strings) / non-zero length (slices)
//	max=N           at most N characters
//	min=N           at least N characters
//	email           bare RFC 5322 address
//	url             absolute http(s) URL
//	objectid        24-char hex Mongo ObjectID
//	category        known language category
//
// The optional `label` tag names the field in error messages.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Result collects validation errors for one input struct.
type Result struct {
	errs []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the first error message, or "".
func (r Result) First() string {
	if len(r.errs) == 0 {
		return ""
	}
	return r.errs[0]
}

// All returns every error message.
func (r Result) All() []string { return r.errs }

func (r *Result) addf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

// Validate checks every tagged field of the struct v. Only string and
// []string fields are inspected; other kinds are ignored.
func Validate(v any) Result {
	var res Result

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return res
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}

		switch field.Type.Kind() {
		case reflect.String:
			checkString(&res, label, rv.Field(i).String(), tag)
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String && strings.Contains(tag, "required") && rv.Field(i).Len() == 0 {
				res.addf("%s is required.", label)
			}
		}
	}
	return res
}

func checkString(res *Result, label, value, tag string) {
	trimmed := strings.TrimSpace(value)

	for _, rule := range strings.Split(tag, ",") {
		rule = strings.TrimSpace(rule)
		switch {
		case rule == "required":
			if trimmed == "" {
				res.addf("%s is required.", label)
				return
			}
		case strings.HasPrefix(rule, "max="):
			n, err := strconv.Atoi(rule[len("max="):])
			if err == nil && len([]rune(trimmed)) > n {
				res.addf("%s must be at most %d characters.", label, n)
			}
		case strings.HasPrefix(rule, "min="):
			n, err := strconv.Atoi(rule[len("min="):])
			if err == nil && trimmed != "" && len([]rune(trimmed)) < n {
				res.addf("%s must be at least %d characters.", label, n)
			}
		case rule == "email":
			if trimmed != "" && !IsValidEmail(trimmed) {
				res.addf("%s must be a valid email address.", label)
			}
		case rule == "url":
			if trimmed != "" && !IsValidHTTPURL(trimmed) {
				res.addf("%s must be a valid http(s) URL.", label)
			}
		case rule == "objectid":
			if trimmed != "" && !IsValidObjectID(trimmed) {
				res.addf("%s is not a valid id.", label)
			}
		case rule == "category":
			if trimmed != "" && !IsValidCategory(trimmed) {
				res.addf("%s must be English, Hausa, or Arabic.", label)
			}
		}
	}
}
