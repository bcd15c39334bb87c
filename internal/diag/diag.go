// Package diag prints non-fatal diagnostics the way the rest of the
// toolchain does: a line on stderr, execution continues. Fatal
// conditions are not this package's concern - those are returned as
// errors and handled by main.
package diag

import (
	"fmt"
	"os"
)

// Printf writes a diagnostic line to stderr, prefixed so it's easy to
// grep out of ROM/ROM-build output.
func Printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "chippy8: "+format+"\n", args...)
}
