// Package enumtable renders the name to value lookup table consumed by the
// introspection API.
package enumtable

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"makeenums/cheader"
)

const header = `/*
 * Wireshark - Network traffic analyzer
 * By Gerald Combs <gerald@wireshark.org>
 * Copyright 1998 Gerald Combs
 *
 * SPDX-License-Identifier: GPL-2.0-or-later
 *
 * Generated automatically from %s.
 *
 * It can be re-created using "make gen-enums".
 *
 * It is fine to edit this file by hand. Particularly if a symbol
 * disappears from the API it can just be removed here. There is no
 * requirement to re-run the generator script.
 *
 */
`

// The ENUM macro, the all_enums name and the sentinel row are what the
// introspection API compiles against.
const tableOpen = `
#define ENUM(arg) { #arg, arg }

static ws_enum_t all_enums[] = {
`

const tableClose = `    { NULL, 0 },
};
`

// Retain returns the names of integer valued symbols in ascending order.
func Retain(symbols *cheader.Symbols, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}
	names := symbols.Filter(func(name string, v cheader.Value) bool {
		if v.Kind != cheader.Int {
			log.Debug("dropping symbol", zap.String("name", name), zap.Stringer("kind", v.Kind))
			return false
		}
		return true
	})
	slices.Sort(names)
	return names
}

// Render returns the generated C source. generator names the program in
// the header comment, includes are emitted in the order given and names
// are emitted as they are.
func Render(generator string, includes, names []string) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(header, generator))
	for _, inc := range includes {
		sb.WriteString(fmt.Sprintf("#include <%s>\n", inc))
	}

	sb.WriteString(tableOpen)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("    ENUM(%s),\n", name))
	}
	sb.WriteString(tableClose)

	return []byte(sb.String())
}
