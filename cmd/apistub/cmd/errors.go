package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/corey/apistub/internal/app"
)

// ExitCode prints err and maps it to the process exit status:
// 0 on success, 1 on any failure or drift.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	// check has already printed the drift report.
	if !errors.Is(err, app.ErrDrift) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	}
	return 1
}
