// Package ferr defines the typed error taxonomy shared across the
// catalog/scan/transfer/import pipeline.
package ferr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MimeLyc/flicks/pkg/log"
)

type Kind int

const (
	KindCatalogParse Kind = iota
	KindIO
	KindTransfer
	KindNetwork
	KindConfigMissing
	KindValidation
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindCatalogParse:
		return "CatalogParse"
	case KindIO:
		return "IoError"
	case KindTransfer:
		return "TransferError"
	case KindNetwork:
		return "NetworkError"
	case KindConfigMissing:
		return "ConfigMissing"
	case KindValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Error is the typed error carried through the pipeline. TransferError
// additionally tracks which side of a copy (src/dst) failed via Context.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
	Cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Context: make(map[string]any)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Context: make(map[string]any), Cause: cause}
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Kind, e.Message)}

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// Transfer builds a TransferError distinguishing which side failed.
func Transfer(srcErr, dstErr error) *Error {
	e := New(KindTransfer, "transfer failed")
	if srcErr != nil {
		e.WithContext("src_err", srcErr.Error())
	}
	if dstErr != nil {
		e.WithContext("dst_err", dstErr.Error())
	}
	cause := srcErr
	if cause == nil {
		cause = dstErr
	}
	e.Cause = cause
	return e
}

func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Log records the error and a short piece of remediation advice.
func Log(err error) {
	var e *Error
	if !errors.As(err, &e) {
		log.Error("unexpected error: %v", err)
		return
	}
	log.Error("%v (%s)", err, advice(e.Kind))
}

func advice(kind Kind) string {
	switch kind {
	case KindCatalogParse:
		return "a catalog TSV file could not be read or decompressed"
	case KindIO:
		return "check file permissions and free disk space"
	case KindTransfer:
		return "check that source and destination are reachable and retry the import"
	case KindNetwork:
		return "check connectivity to datasets.imdbws.com"
	case KindConfigMissing:
		return "run 'flicks init <directory>' first"
	case KindValidation:
		return "check the command arguments"
	default:
		return "see the wrapped error for detail"
	}
}
