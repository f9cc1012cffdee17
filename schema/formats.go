package schema

import (
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

// Format checkers are pluggable predicates keyed by name. They are
// registered process-wide with gojsonschema, alongside its built-ins.
func init() {
	gojsonschema.FormatCheckers.Add("iso8601", iso8601Format{})
	gojsonschema.FormatCheckers.Add("rfc2822", rfc2822Format{})
	gojsonschema.FormatCheckers.Add("ascii", asciiFormat{})
	gojsonschema.FormatCheckers.Add("e164", e164Format{})
	gojsonschema.FormatCheckers.Add("port", portFormat{})
	gojsonschema.FormatCheckers.Add("timestamp", timestampFormat{})
	gojsonschema.FormatCheckers.Add("valid_file", validFileFormat{})
	gojsonschema.FormatCheckers.Add("https_uri", httpsURIFormat{})
	gojsonschema.FormatCheckers.Add("email", emailFormat{})
	gojsonschema.FormatCheckers.Add("uri", uriFormat{})
}

// KnownFormat reports whether a format name has a registered checker.
func KnownFormat(name string) bool {
	return gojsonschema.FormatCheckers.Has(name)
}

var fieldChecks = playground.New()

var e164Pattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var iso8601Layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var rfc2822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

type emailFormat struct{}

func (emailFormat) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	return fieldChecks.Var(s, "email") == nil
}

type uriFormat struct{}

func (uriFormat) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

type httpsURIFormat struct{}

func (httpsURIFormat) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "https" && u.Host != ""
}

type iso8601Format struct{}

func (iso8601Format) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	for _, layout := range iso8601Layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

type rfc2822Format struct{}

func (rfc2822Format) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	for _, layout := range rfc2822Layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

type asciiFormat struct{}

func (asciiFormat) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

type e164Format struct{}

func (e164Format) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	return e164Pattern.MatchString(s)
}

type portFormat struct{}

func (portFormat) IsFormat(input any) bool {
	switch v := input.(type) {
	case string:
		n, err := strconv.Atoi(v)
		return err == nil && n >= 0 && n <= 65535
	case float64:
		return v == float64(int64(v)) && v >= 0 && v <= 65535
	case int:
		return v >= 0 && v <= 65535
	default:
		return true
	}
}

type timestampFormat struct{}

func (timestampFormat) IsFormat(input any) bool {
	switch v := input.(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return err == nil && n >= 0
	case float64:
		return v >= 0 && v == float64(int64(v))
	case int:
		return v >= 0
	default:
		return true
	}
}

type validFileFormat struct{}

func (validFileFormat) IsFormat(input any) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	info, err := os.Stat(s)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	f, err := os.Open(s)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
