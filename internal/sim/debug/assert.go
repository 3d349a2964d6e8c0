// Package debug holds assertions that are compiled in by default and become
// no-ops under the "release" build tag.
package debug

import "fmt"

// Assertf panics with the formatted message when Enabled and cond is false.
func Assertf(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
