package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cortisol/internal/logger"
)

// ExitAborted is the exit code used when the user cancels an interactive prompt
const ExitAborted = 130

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// IsAborted reports whether err comes from the user cancelling a prompt
func IsAborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// Fatal logs an error and exits the program.
// A cancelled prompt exits with ExitAborted and no error output.
func Fatal(err error) {
	if err == nil {
		return
	}
	if IsAborted(err) {
		logger.Debug("Prompt aborted by user")
		fmt.Fprintln(os.Stderr, "Aborted.")
		os.Exit(ExitAborted)
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
