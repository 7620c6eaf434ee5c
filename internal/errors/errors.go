// Package errors formats command failures for the terminal and picks the
// process exit code.
package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitual/internal/app"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
)

const (
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
)

var exit = os.Exit

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint suggests a next step for errors the user can fix, or "".
func Hint(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotInitialized):
		return "run 'habitual init' to create storage"
	case errors.Is(err, storage.ErrCorrupt):
		return "restore from 'habitual export' output with 'habitual import'"
	case errors.Is(err, postgres.ErrEmbeddedCredentials):
		return "store the connection string with 'habitual init --keyring' or set HABITUAL_DB_CONNECTION"
	}
	return ""
}

// ExitCode maps err onto the process exit status.
func ExitCode(err error) int {
	var verr *models.ValidationError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &verr):
		return ExitValidation
	case errors.Is(err, app.ErrNotFound):
		return ExitNotFound
	}
	return ExitFailure
}

// Report writes the formatted error and any hint to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// Fatal logs an error and exits with the code chosen by ExitCode
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		exit(ExitCode(err))
	}
}
