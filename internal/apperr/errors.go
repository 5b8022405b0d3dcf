// Package apperr collects the sentinel errors shared across the retrieval
// core.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrVaultRootNotFound    = errors.New("vault root not found")
	ErrEmbeddingUnavailable = errors.New("embedding model unavailable")
)

// Warning is a non-fatal issue surfaced to the caller alongside a result,
// per the "best-available answer with explanatory warnings" contract (§7).
type Warning struct {
	Code    string
	Message string
}

func (w Warning) Error() string {
	if w.Code == "" {
		return w.Message
	}
	return w.Code + ": " + w.Message
}

// Warnf constructs a Warning with a fixed code.
func Warnf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
