package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Values flowing between commands are dynamically typed:
//   - float64 for numbers
//   - string for text
//   - bool for comparison results
//   - []float64 for numlist, []interface{} for other lists, []string for arg
//   - *Pattern, *Stack, *Tape, Executable
//   - nil for the undefined result of commands like rem and exit

// Pattern is a compiled regular expression along with the flags it was
// created with; the "g" flag makes replace act on every match.
type Pattern struct {
	*regexp.Regexp
	Source string
	Flags  string
	Global bool
}

// compilePattern builds a Pattern from source and flags among "gimsuy";
// "i", "m" and "s" map to the matching RE2 flags, "u" and "y" are accepted
// and ignored.
func compilePattern(source, flags string) (*Pattern, error) {
	pat := &Pattern{Source: source, Flags: flags}
	var reFlags strings.Builder
	for _, f := range flags {
		switch f {
		case 'g':
			pat.Global = true
		case 'i', 'm', 's':
			reFlags.WriteRune(f)
		case 'u', 'y':
		default:
			return nil, fmt.Errorf("invalid pattern flag %q", f)
		}
	}
	expr := source
	if reFlags.Len() > 0 {
		expr = "(?" + reFlags.String() + ")" + source
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	pat.Regexp = re
	return pat, nil
}

func (pat *Pattern) String() string { return "/" + pat.Source + "/" + pat.Flags }

// replace substitutes repl for the first match in s, or every match when the
// pattern is global; repl may refer to groups as $1 or ${name}.
func (pat *Pattern) replace(s, repl string) string {
	if pat.Global {
		return pat.ReplaceAllString(s, repl)
	}
	loc := pat.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	var out []byte
	out = append(out, s[:loc[0]]...)
	out = pat.ExpandString(out, repl, s, loc)
	out = append(out, s[loc[1]:]...)
	return string(out)
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case string:
		return val
	case float64:
		return formatNumber(val)
	case bool:
		return strconv.FormatBool(val)
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = formatNumber(f)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(val, ",")
	case []interface{}:
		return joinValues(val)
	case fmt.Stringer:
		return val.String()
	default:
		return "[object Object]"
	}
}

func joinValues(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v != nil {
			parts[i] = toString(v)
		}
	}
	return strings.Join(parts, ",")
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		i := strings.IndexByte(s, 'e')
		// 1e-7 rather than 1e-07
		return s[:i+2] + strings.TrimLeft(s[i+2:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toNumber(v interface{}) float64 {
	switch val := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return val
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		return parseNumber(val)
	case []float64, []string, []interface{}, *Stack:
		return parseNumber(toString(val))
	default:
		return math.NaN()
	}
}

// parseNumber parses decimal, Infinity and 0x/0o/0b forms; blank text is 0
// and anything else is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil || strings.ContainsRune(s, '_') {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if strings.ContainsAny(s, "_xXpPiInN") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}

// toIndex truncates v to an integer index; ok is false for NaN and infinities.
func toIndex(v interface{}) (int, bool) {
	f := toNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// toNumbers flattens a list value into numbers; scalars become a single
// element list.
func toNumbers(v interface{}) []float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case []float64:
		return val
	case []interface{}:
		nums := make([]float64, len(val))
		for i, e := range val {
			nums[i] = toNumber(e)
		}
		return nums
	case []string:
		nums := make([]float64, len(val))
		for i, e := range val {
			nums[i] = parseNumber(e)
		}
		return nums
	default:
		return []float64{toNumber(val)}
	}
}
