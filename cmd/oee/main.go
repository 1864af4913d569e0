package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Command completed
	ExitDataError = 1 // Dataset contents or analysis request rejected
	ExitError     = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if isDataError(err) {
			os.Exit(ExitDataError)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}

// isDataError reports whether err stems from the dataset contents or the
// analysis request rather than from configuration or I/O.
func isDataError(err error) bool {
	var (
		schemaErr *records.SchemaError
		rowErr    *records.RowError
		keyErr    *oee.InvalidGroupKeyError
		paramErr  *oee.InvalidParameterError
	)
	return errors.As(err, &schemaErr) ||
		errors.As(err, &rowErr) ||
		errors.As(err, &keyErr) ||
		errors.As(err, &paramErr)
}
