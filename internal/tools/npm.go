package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// NpmLatestVersion queries the npm registry for the latest published version
// of pkg ("npm view <pkg> version").
func NpmLatestVersion(ctx context.Context, r Runner, pkg string) (string, error) {
	out, err := r.Output(ctx, "", "npm", "view", pkg, "version", "--json")
	if err != nil && out == "" {
		return "", err
	}
	s := strings.TrimSpace(out)
	if s == "" {
		return "", fmt.Errorf("npm view %s: empty output", pkg)
	}
	// npm may return a bare JSON string like "1.2.3" or plain 1.2.3
	var v string
	if json.Unmarshal([]byte(s), &v) == nil && v != "" {
		return v, nil
	}
	// A package with several matching versions yields an array; last wins.
	var list []string
	if json.Unmarshal([]byte(s), &list) == nil && len(list) > 0 {
		return list[len(list)-1], nil
	}
	// Fallback: first line
	return strings.Split(s, "\n")[0], nil
}
