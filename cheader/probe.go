package cheader

import (
	"fmt"
	"strconv"
	"strings"
)

// ProbeFile is the name of the in-memory translation unit. It is placed in
// the parser's directory so quoted includes resolve relative to it.
const ProbeFile = "make-enums-probe.c"

const probePrefix = "__make_enums_probe_"

// includeSource returns one #include line per header, in the given order.
func includeSource(headers []string) string {
	var sb strings.Builder
	for _, h := range headers {
		sb.WriteString(fmt.Sprintf("#include \"%s\"\n", h))
	}
	return sb.String()
}

// probeSource returns a translation unit that evaluates each macro in
// macros as the initializer of a static variable. Probe n starts on line
// probeLine(len(headers), n).
func probeSource(headers, macros []string) string {
	var sb strings.Builder
	sb.WriteString(includeSource(headers))
	for i, name := range macros {
		sb.WriteString(fmt.Sprintf("static __auto_type %s%d = %s;\n", probePrefix, i, name))
	}
	return sb.String()
}

// probeLine is the 1-based line the n-th probe declaration starts on.
func probeLine(headers, n int) uint32 {
	return uint32(headers + n + 1)
}

// probeIndex returns n for a variable named by probeSource.
func probeIndex(spelling string) (int, bool) {
	rest, ok := strings.CutPrefix(spelling, probePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
