// utils/strings.go
package utils

import "strings"

// NormalizeName folds a country name to its canonical lookup form:
// trimmed and lower-cased. All case-insensitive matching goes through this.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
