// Package invariants gates debug-only assertions.
//
// Build with -tags invariants to turn the checks on. In regular builds Enabled is
// a false constant and guarded blocks are compiled out.
package invariants

import "fmt"

// Panicf panics with a formatted message. Callers guard it with Enabled.
func Panicf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
