// apistub derives a compile-only API surface from a Java source tree.
// Every public or protected type is kept, every body throws.
package main

import (
	"os"

	"github.com/corey/apistub/cmd/apistub/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
