package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/partition/pkg/intervals"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites region expressions into something zygomys can
// read:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     (interval 3 :inf) needs no global named inf.
//
//  2. Kebab-case to underscore: my-set -> my_set. zygomys reads a hyphen
//     inside an identifier as the subtraction operator.
//
//  3. ; line comments become // comments.
//
// String literals are left alone.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			j := skipQuoted(b, i, '"', true)
			result = append(result, b[i:j]...)
			i = j
			continue
		case b[i] == '`':
			j := skipQuoted(b, i, '`', false)
			result = append(result, b[i:j]...)
			i = j
			continue
		case b[i] == ';':
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			result = append(result, b[i], b[i+1])
			i += 2
			continue
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// hyphen between identifier characters, not a minus operator
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// skipQuoted returns the index just past the literal opened at b[start].
func skipQuoted(b []byte, start int, quote byte, escapes bool) int {
	i := start + 1
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			i += 2
			continue
		}
		i++
	}
	if i < len(b) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpRegion wraps an interval set so it can be passed between builtins.
type sexpRegion struct {
	set *intervals.Set
}

func (r *sexpRegion) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(region %s)", r.set)
}
func (r *sexpRegion) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. Only the
// keywords named in keys take a value; others such as :inf stay positional.
func parseArgs(args []zygo.Sexp, keys ...string) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if ok && contains(keys, name) && i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
			continue
		}
		result.positional = append(result.positional, args[i])
	}
	return result
}

func contains(keys []string, name string) bool {
	for _, k := range keys {
		if k == name {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toBound extracts an interval bound: a number, :inf or :neg-inf.
func toBound(s zygo.Sexp) (float64, error) {
	if name, ok := isKW(s); ok {
		switch name {
		case "inf", "pos-inf":
			return math.Inf(1), nil
		case "neg-inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("invalid bound :%s, expected a number, :inf or :neg-inf", name)
	}
	return toFloat64(s)
}

// toRegion extracts an interval set from a sexpRegion.
func toRegion(s zygo.Sexp) (*intervals.Set, error) {
	if r, ok := s.(*sexpRegion); ok {
		return r.set, nil
	}
	return nil, fmt.Errorf("expected region, got %T (%s)", s, s.SexpString(nil))
}

// toRegions extracts every argument as a region.
func toRegions(fn string, args []zygo.Sexp) ([]*intervals.Set, error) {
	sets := make([]*intervals.Set, len(args))
	for i, a := range args {
		s, err := toRegion(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		sets[i] = s
	}
	return sets, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the region builtins into a zygomys environment.
// Cuts created by the builtins use tolerance tol.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, tol float64) {

	// -----------------------------------------------------------------------
	// (interval 1 6) (interval 9 :inf) (interval :lower 1 :upper 6)
	// -----------------------------------------------------------------------
	env.AddFunction("interval", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args, "lower", "upper")
		lower, upper := math.Inf(-1), math.Inf(1)
		if len(pa.positional) > 2 {
			return zygo.SexpNull, fmt.Errorf("interval takes at most 2 bounds, got %d", len(pa.positional))
		}
		if len(pa.positional) > 0 {
			pa.kw["lower"] = pa.positional[0]
		}
		if len(pa.positional) > 1 {
			pa.kw["upper"] = pa.positional[1]
		}

		if v, ok := pa.kw["lower"]; ok {
			f, err := toBound(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("interval: lower: %w", err)
			}
			lower = f
		}
		if v, ok := pa.kw["upper"]; ok {
			f, err := toBound(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("interval: upper: %w", err)
			}
			upper = f
		}
		return &sexpRegion{set: intervals.NewWithTolerance(lower, upper, tol)}, nil
	})

	// -----------------------------------------------------------------------
	// (full) (empty)
	// -----------------------------------------------------------------------
	env.AddFunction("full", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("full takes no arguments, got %d", len(args))
		}
		return &sexpRegion{set: intervals.Full(tol)}, nil
	})
	env.AddFunction("empty", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("empty takes no arguments, got %d", len(args))
		}
		return &sexpRegion{set: intervals.Empty(tol)}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...) (intersection a b ...)
	// -----------------------------------------------------------------------
	fold := func(fn string, identity func() *intervals.Set, op func(a, b *intervals.Set) *intervals.Set) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			sets, err := toRegions(fn, args)
			if err != nil {
				return zygo.SexpNull, err
			}
			if len(sets) == 0 {
				return &sexpRegion{set: identity()}, nil
			}
			acc := sets[0]
			for _, s := range sets[1:] {
				acc = op(acc, s)
			}
			return &sexpRegion{set: acc}, nil
		}
	}
	env.AddFunction("union", fold("union", func() *intervals.Set { return intervals.Empty(tol) }, intervals.Union))
	env.AddFunction("intersection", fold("intersection", func() *intervals.Set { return intervals.Full(tol) }, intervals.Intersection))

	// -----------------------------------------------------------------------
	// (difference a b) (xor a b)
	// -----------------------------------------------------------------------
	binary := func(fn string, op func(a, b *intervals.Set) *intervals.Set) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 regions, got %d", fn, len(args))
			}
			sets, err := toRegions(fn, args)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpRegion{set: op(sets[0], sets[1])}, nil
		}
	}
	env.AddFunction("difference", binary("difference", intervals.Difference))
	env.AddFunction("xor", binary("xor", intervals.Xor))

	// -----------------------------------------------------------------------
	// (complement a)
	// -----------------------------------------------------------------------
	env.AddFunction("complement", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("complement requires exactly 1 region, got %d", len(args))
		}
		s, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("complement: %w", err)
		}
		return &sexpRegion{set: s.Complement()}, nil
	})

	// -----------------------------------------------------------------------
	// (measure a) -> number, (locate a x) -> "inside" | "outside" | "boundary"
	// -----------------------------------------------------------------------
	env.AddFunction("measure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("measure requires exactly 1 region, got %d", len(args))
		}
		s, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("measure: %w", err)
		}
		return &zygo.SexpFloat{Val: s.Size()}, nil
	})
	env.AddFunction("locate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("locate requires a region and a point, got %d arguments", len(args))
		}
		s, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("locate: region: %w", err)
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("locate: point: %w", err)
		}
		return &zygo.SexpStr{S: s.CheckPoint(intervals.Point(x)).String()}, nil
	})
}
