// pkg/row/naming.go
package row

import (
	"regexp"
	"strings"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z])([A-Z])`)
)

// CamelToSnake converts a camelCase identifier to its snake_case column name.
//
//	userId     -> user_id
//	HTTPStatus -> http_status
func CamelToSnake(name string) string {
	s := acronymBoundary.ReplaceAllString(name, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
