// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when a document exceeds its size limit.
var ErrFileTooLarge = stderrors.New("file too large")

// FileTooLargeError reports a document over its size limit.
// It wraps ErrFileTooLarge for errors.Is() compatibility.
type FileTooLargeError struct {
	Filename string
	Size     int64
	Max      int64
}

// Error implements the error interface for FileTooLargeError.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.Filename, e.Size, e.Max)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError prefixes every CUE error in err with the document name and the
// JSON path of the offending field:
//
//	value.cue: servers[1]: conflicting values 80 and "80"
//	config.cue: validation failed:
//	  dialect: 2 errors in empty disjunction
//	  runtime.timeout: invalid value "soon"
//
// Errors that carry no CUE detail are wrapped with the document name only.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		lines = append(lines, formatLine(formatPath(errors.Path(e)), e.Error()))
	}
	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatLine joins path and msg, dropping the path when CUE already put it
// at the front of the message.
func formatLine(path, msg string) string {
	if path == "" {
		return msg
	}
	if rest, ok := strings.CutPrefix(msg, path); ok {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return path + ": " + msg
}

// formatPath renders a CUE path such as ["items", "0", "key"] as
// "items[0].key". A leading numeric element is kept as a plain name.
func formatPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			sb.WriteString("[" + part + "]")
		case i > 0:
			sb.WriteString("." + part)
		default:
			sb.WriteString(part)
		}
	}
	return sb.String()
}

func isIndex(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// CheckFileSize fails with *FileTooLargeError when data is longer than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return &FileTooLargeError{Filename: filename, Size: size, Max: maxSize}
	}
	return nil
}
