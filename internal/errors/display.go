package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// NoColorRequested reports whether the environment asks for plain output
func NoColorRequested() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("WBCHECK_NO_COLOR") != ""
}

// DisplayError prints err to w. Color is turned off for the whole process when
// noColor is set or the environment asks for plain output.
func DisplayError(w io.Writer, err error, noColor bool) {
	if noColor || NoColorRequested() {
		color.NoColor = true
	}
	FprintError(w, err)
}

// FprintError formats err with guidance for a terminal
func FprintError(w io.Writer, err error) {
	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		fmt.Fprintln(w, color.RedString("Error: %v", err))
		return
	}

	colorFunc := getErrorStyle(checkErr.Type)

	fmt.Fprintf(w, "\n%s\n", colorFunc("Error: %s", checkErr.Message))

	if checkErr.Cause != "" {
		fmt.Fprintf(w, "   %s %s\n", color.YellowString("Cause:"), color.HiBlackString(checkErr.Cause))
	}

	if len(checkErr.Solutions) > 0 {
		fmt.Fprintf(w, "\n   %s\n", color.GreenString("Solutions:"))
		for i, solution := range checkErr.Solutions {
			fmt.Fprintf(w, "   %s %s\n", color.HiBlackString(fmt.Sprintf("%d.", i+1)), solution)
		}
	}

	if checkErr.Help != "" {
		fmt.Fprintf(w, "\n   %s %s\n", color.MagentaString("Help:"), color.HiWhiteString(checkErr.Help))
	}

	fmt.Fprintln(w)
}

// getErrorStyle returns the appropriate color function for an error type
func getErrorStyle(errType ErrorType) func(format string, a ...interface{}) string {
	switch errType {
	case ErrorTypeConfiguration, ErrorTypeValidation:
		return color.YellowString
	case ErrorTypeDecode:
		return color.MagentaString
	case ErrorTypeFileSystem:
		return color.CyanString
	default:
		return color.RedString
	}
}
