package core

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// validate is shared across decodes; the validator is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors against the front-matter key, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// dateLayouts are accepted for string-typed date fields, most specific first.
// Native YAML timestamps and TOML date/date-time values arrive already typed
// and skip these.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DecodeArticle coerces a raw front-matter record into a typed Article and
// validates it. It returns a *ValidationError for anything an author can fix
// in the content file; other error types indicate programming errors.
func DecodeArticle(id string, meta Metadata, body string) (Article, error) {
	a := Article{
		ID:   id,
		Body: body,
	}

	for key, val := range meta {
		var err error
		switch strings.ToLower(key) {
		case "title":
			a.Title, err = asString(val)
		case "subtitle":
			a.Subtitle, err = asString(val)
		case "date":
			a.Date, err = asTime(val)
		case "category":
			a.Category, err = asString(val)
		case "tags":
			a.Tags, err = asStringSlice(val)
		case "icon":
			a.Icon, err = asString(val)
		case "iconcolor", "icon_color":
			a.IconColor, err = asString(val)
		case "description":
			a.Description, err = asString(val)
		case "links":
			a.Links, err = asLinks(val)
		case "group":
			a.Group, err = asString(val)
		case "draft":
			a.Draft, err = asBool(val)
		case "featured":
			a.Featured, err = asBool(val)
		default:
			// Unknown keys are tolerated; authors keep scratch fields around.
		}
		if err != nil {
			return Article{}, &ValidationError{ID: id, Field: strings.ToLower(key), Reason: err.Error()}
		}
	}

	if err := validate.Struct(a); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Article{}, fmt.Errorf("validate article %s: %w", id, err)
		}
		first := verrs[0]
		reason := "is missing or empty"
		if first.Tag() != "required" && first.Tag() != "min" {
			reason = fmt.Sprintf("failed %q constraint", first.Tag())
		}
		return Article{}, &ValidationError{ID: id, Field: first.Field(), Reason: reason}
	}

	return a, nil
}

func asString(val any) (string, error) {
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("must be a string, got %T", val)
	}
	return s, nil
}

func asBool(val any) (bool, error) {
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("must be a boolean, got %T", val)
	}
	return b, nil
}

func asTime(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case toml.LocalDate:
		return v.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", v)
	default:
		return time.Time{}, fmt.Errorf("must be a date, got %T", val)
	}
}

func asStringSlice(val any) ([]string, error) {
	switch v := val.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a list of strings, got %T element", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a list of strings, got %T", val)
	}
}

func asLinks(val any) ([]Link, error) {
	items, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("must be a list of {label, url} entries, got %T", val)
	}

	links := make([]Link, 0, len(items))
	for _, item := range items {
		entry, err := asLinkEntry(item)
		if err != nil {
			return nil, err
		}
		links = append(links, entry)
	}
	return links, nil
}

func asLinkEntry(item any) (Link, error) {
	var raw map[string]any
	switch m := item.(type) {
	case map[string]any:
		raw = m
	case map[any]any:
		// Older YAML decoders hand back interface keys.
		raw = make(map[string]any, len(m))
		for k, v := range m {
			raw[fmt.Sprint(k)] = v
		}
	default:
		return Link{}, fmt.Errorf("link entries must be maps, got %T", item)
	}

	var link Link
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return Link{}, fmt.Errorf("link %q must be a string, got %T", k, v)
		}
		switch strings.ToLower(k) {
		case "label", "name", "title":
			link.Label = s
		case "url", "href":
			link.URL = s
		}
	}
	return link, nil
}
