package providers

import "strings"

// ExpandURL fills {placeholder} segments of a URL template, the way
// provider base URLs declare their variable parts.
func ExpandURL(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
