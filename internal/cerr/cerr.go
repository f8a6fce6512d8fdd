// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr provides constant sentinel errors for internal packages.
package cerr

import "fmt"

type Error string

func (e Error) Error() string {
	return string(e)
}

// With returns an error that matches e under errors.Is and carries the
// formatted detail after it.
func (e Error) With(format string, args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}
