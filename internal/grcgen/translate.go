// SPDX-License-Identifier: GPL-3.0-or-later
package grcgen

import "strings"

// TranslateType maps a raw C++ type to the GRC type vocabulary. The default
// value literal disambiguates hex-encoded integer parameters. It satisfies
// blockparse.TypeTranslator.
func TranslateType(rawType, defaultValue string) string {
	switch rawType {
	case "float", "double":
		return "real"
	case "gr_complex":
		return "complex"
	}
	if rawType == "int" && strings.HasPrefix(defaultValue, "0x") {
		return "hex"
	}
	return rawType
}
