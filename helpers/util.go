package helpers

import (
	"strings"
)

// CollapseSpace trims s and replaces every run of whitespace with one space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
