package cmderr

import (
	"fmt"
	"os"
)

// ExitOnErr writes error to os.Stderr and calls os.Exit with code 1.
// Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
