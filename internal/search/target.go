package search

import "strings"

var braceStripper = strings.NewReplacer("{", "", "}", "")

// TargetURL returns the documentation page of an endpoint:
// GET /users/{id} becomes get_users_id.html
func TargetURL(method, path string) string {
	p := strings.ReplaceAll(path, "/", "_")
	p = braceStripper.Replace(p)
	p = strings.TrimPrefix(p, "_")
	return strings.ToLower(method) + "_" + p + ".html"
}
