// SPDX-License-Identifier: GPL-3.0-or-later
package blockparse

import (
	"errors"
	"fmt"
)

// ErrNoSignature is returned when a structurally required pattern (factory
// declaration, paired IO signature calls) is absent from the source text.
var ErrNoSignature = errors.New("no matching signature found")

// UnsupportedConstructError marks a construct the extractor recognizes but
// deliberately does not interpret, such as vector-based IO signatures.
type UnsupportedConstructError struct {
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}

// MalformedArgumentError reports a factory argument that could not be split
// into a type and a name. It aborts the whole extraction for the file.
type MalformedArgumentError struct {
	Raw string
}

func (e *MalformedArgumentError) Error() string {
	return fmt.Sprintf("cannot split argument into type and name: %q", e.Raw)
}
