package api

import (
	"net/url"
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`\[([^\[\]]+)\]`)

// ResolveRoute strips leading slashes from route and substitutes every
// [name] placeholder with the path-escaped value of params[name].
func ResolveRoute(route string, params map[string]string) (string, error) {
	resolved := strings.TrimLeft(route, "/")

	for _, match := range placeholderRegex.FindAllStringSubmatch(route, -1) {
		placeholder, name := match[0], match[1]
		value, ok := params[name]
		if !ok {
			return "", &MissingParamError{Param: name, Route: route}
		}
		resolved = strings.ReplaceAll(resolved, placeholder, url.PathEscape(value))
	}

	return resolved, nil
}

// RouteParams lists the distinct placeholder names of route in order of first appearance.
func RouteParams(route string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, match := range placeholderRegex.FindAllStringSubmatch(route, -1) {
		if _, ok := seen[match[1]]; ok {
			continue
		}
		seen[match[1]] = struct{}{}
		names = append(names, match[1])
	}
	return names
}
