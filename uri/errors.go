/*
Copyright 2026 Uritk Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uri

import (
	"errors"
	"fmt"
)

// Sentinel errors for the parse failure taxonomy. Every *Error returned by
// this package wraps one of these, so callers can classify failures with
// errors.Is without matching message text.
var (
	ErrInvalidScheme      = errors.New("invalid scheme")
	ErrInvalidAuthority   = errors.New("invalid authority")
	ErrInvalidHost        = errors.New("invalid host")
	ErrInvalidIPLiteral   = errors.New("invalid IP literal")
	ErrInvalidIPv4        = errors.New("invalid IPv4 address")
	ErrInvalidIPv6        = errors.New("invalid IPv6 address")
	ErrInvalidPort        = errors.New("invalid port")
	ErrInvalidPath        = errors.New("invalid path")
	ErrInvalidQuery       = errors.New("invalid query")
	ErrInvalidFragment    = errors.New("invalid fragment")
	ErrInvalidPctEncoding = errors.New("invalid percent-encoding")
	ErrRelativize         = errors.New("cannot relativize a path containing dot segments")
	ErrMissingBase        = errors.New("resolution requires an absolute base")
)

// Error is the structured error returned by the parsing functions. It
// carries the full input and the byte offset at which the parser stopped.
type Error struct {
	Message string
	Input   string
	Offset  int
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Message, e.Offset, e.Input)
}

// Unwrap returns the sentinel this error was built from.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(sentinel error, message, input string, offset int) *Error {
	return &Error{
		Message: message,
		Input:   input,
		Offset:  offset,
		Err:     sentinel,
	}
}
