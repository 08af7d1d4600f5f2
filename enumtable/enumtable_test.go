package enumtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makeenums/cheader"
	orderedmap "makeenums/ordered_map"
)

func symbols(pairs ...any) *cheader.Symbols {
	m := orderedmap.NewOrderedMap[string, cheader.Value]()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(cheader.Value))
	}
	return m
}

func TestRetain(t *testing.T) {
	syms := symbols(
		"FOO", cheader.IntValue(1),
		"BAZ", cheader.Value{Kind: cheader.String, Str: "str"},
		"BAR", cheader.IntValue(2),
		"PI", cheader.Value{Kind: cheader.Float, Float: 3.14},
		"GUARD_H", cheader.Value{Kind: cheader.Unresolved},
		"BIG", cheader.UintValue(1<<63),
	)

	assert.Equal(t, []string{"BAR", "BIG", "FOO"}, Retain(syms, nil))
}

func TestRetainIsByteOrdered(t *testing.T) {
	syms := symbols(
		"b", cheader.IntValue(0),
		"A_2", cheader.IntValue(0),
		"_x", cheader.IntValue(0),
		"A_10", cheader.IntValue(0),
		"B", cheader.IntValue(0),
	)

	assert.Equal(t, []string{"A_10", "A_2", "B", "_x", "b"}, Retain(syms, nil))
}

func TestRetainEmpty(t *testing.T) {
	names := Retain(symbols(), nil)
	assert.Empty(t, names)
}

const goldenFooBar = `/*
 * Wireshark - Network traffic analyzer
 * By Gerald Combs <gerald@wireshark.org>
 * Copyright 1998 Gerald Combs
 *
 * SPDX-License-Identifier: GPL-2.0-or-later
 *
 * Generated automatically from make-enums.
 *
 * It can be re-created using "make gen-enums".
 *
 * It is fine to edit this file by hand. Particularly if a symbol
 * disappears from the API it can just be removed here. There is no
 * requirement to re-run the generator script.
 *
 */
#include <epan/foo.h>
#include <epan/bar.h>

#define ENUM(arg) { #arg, arg }

static ws_enum_t all_enums[] = {
    ENUM(BAR),
    ENUM(FOO),
    { NULL, 0 },
};
`

func TestRender(t *testing.T) {
	out := Render("make-enums", []string{"epan/foo.h", "epan/bar.h"}, []string{"BAR", "FOO"})
	assert.Equal(t, goldenFooBar, string(out))
}

func TestRenderNoInputs(t *testing.T) {
	out := string(Render("make-enums", nil, nil))

	assert.Contains(t, out, "Generated automatically from make-enums.\n")
	assert.NotContains(t, out, "#include")
	assert.True(t, strings.HasSuffix(out, "static ws_enum_t all_enums[] = {\n    { NULL, 0 },\n};\n"))
}

func TestRenderKeepsIncludeOrderAndDuplicates(t *testing.T) {
	includes := []string{"z.h", "a.h", "z.h"}
	out := string(Render("gen", includes, nil))

	var got []string
	for _, line := range strings.Split(out, "\n") {
		if inc, ok := strings.CutPrefix(line, "#include "); ok {
			got = append(got, inc)
		}
	}
	assert.Equal(t, []string{"<z.h>", "<a.h>", "<z.h>"}, got)
}

func TestRenderIsDeterministic(t *testing.T) {
	syms := symbols(
		"C", cheader.IntValue(3),
		"A", cheader.IntValue(1),
		"B", cheader.IntValue(2),
	)

	first := Render("gen", []string{"x.h"}, Retain(syms, nil))
	second := Render("gen", []string{"x.h"}, Retain(syms, nil))
	require.Equal(t, first, second)
	assert.Contains(t, string(first), "    ENUM(A),\n    ENUM(B),\n    ENUM(C),\n    { NULL, 0 },\n")
}
