package night

import (
	"strconv"
	"strings"
)

// EnableColor toggles ANSI coloring of formatted values. It is off by
// default; neither `night <file>` nor the REPL turns it on.
var EnableColor = false

const (
	colorReset = "\033[0m"
	colorBlue  = "\033[34m"
	colorGreen = "\033[32m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}

// FormatValue renders v the way `print` and `str()` do (spec.md §4.3):
// bool/int/float/str print their natural text (strings unquoted), arrays
// print as a bracketed, comma-separated list of their elements' own
// FormatValue text, except that string elements are double-quoted.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Kind {
	case VBool:
		b.WriteString(colorize(strconv.FormatBool(v.asBool()), colorBlue))
	case VInt:
		b.WriteString(colorize(strconv.FormatInt(v.asInt(), 10), colorBlue))
	case VFloat:
		b.WriteString(colorize(formatFloat(v.asFloat()), colorBlue))
	case VStr:
		b.WriteString(colorize(v.asStr(), colorGreen))
	case VArray:
		arr := v.asArray()
		b.WriteString("[ ")
		for i, e := range arr {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValueQuoted(b, *e)
		}
		if len(arr) > 0 {
			b.WriteString(" ")
		}
		b.WriteByte(']')
	}
}

// writeValueQuoted is writeValue but quotes string elements, so nested
// strings inside an array are distinguishable from other elements.
func writeValueQuoted(b *strings.Builder, v Value) {
	if v.Kind == VStr {
		b.WriteString(colorize(strconv.Quote(v.asStr()), colorGreen))
		return
	}
	writeValue(b, v)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
