package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps failure kinds to distinct non-zero codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedStatement), errors.Is(err, domain.ErrEmptyClause):
		return 2
	case errors.Is(err, domain.ErrUnknownType), errors.Is(err, domain.ErrUnparsableIntWidth):
		return 3
	case errors.Is(err, domain.ErrIOFailure):
		return 4
	case errors.Is(err, domain.ErrInvalidRowCount):
		return 5
	default:
		return 1
	}
}
