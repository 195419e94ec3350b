package cli

import (
	"fmt"
	"strings"

	"github.com/minipm/minipm/pkg/semver"
)

// parsePackageSpec splits a command-line package argument into a name and a
// version selector. Scoped packages keep their leading @:
//
//	express           → ("express", "latest")
//	express@4.18.2    → ("express", "4.18.2")
//	@types/node@20.0.0 → ("@types/node", "20.0.0")
func parsePackageSpec(raw string) (name, selector string, err error) {
	name, selector = splitSpec(raw)
	if name == "" {
		return "", "", fmt.Errorf("empty package name in %q", raw)
	}
	if strings.HasPrefix(name, "@") && !strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid scoped package name %q", name)
	}
	if selector == "" {
		selector = semver.Latest
	}
	if !semver.ValidSelector(selector) {
		return "", "", fmt.Errorf("unsupported version selector %q (only exact versions and %q)", selector, semver.Latest)
	}
	return name, selector, nil
}

func splitSpec(raw string) (name, selector string) {
	if strings.HasPrefix(raw, "@") {
		// Scoped: @scope/name@version — the version separator is the
		// second @.
		rest := raw[1:]
		if idx := strings.Index(rest, "@"); idx >= 0 {
			return raw[:idx+1], rest[idx+1:]
		}
		return raw, ""
	}
	if before, after, ok := strings.Cut(raw, "@"); ok {
		return before, after
	}
	return raw, ""
}
