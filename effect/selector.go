package effect

import (
	"fmt"
	"regexp"
	"strings"
)

// Selector is a typed predicate over exogenous column names. Selectors are
// evaluated eagerly at fit time against the concrete column set, so a
// misconfigured effect fails before inference ever starts.
type Selector interface {
	// Match reports whether the named column belongs to this effect.
	Match(name string) bool

	// String describes the predicate for error messages.
	String() string
}

type exactSelector struct{ names map[string]struct{} }

func (s exactSelector) Match(name string) bool {
	_, ok := s.names[name]

	return ok
}

func (s exactSelector) String() string {
	keys := make([]string, 0, len(s.names))
	for k := range s.names {
		keys = append(keys, k)
	}

	return fmt.Sprintf("exact(%s)", strings.Join(keys, ","))
}

// Exact selects columns by literal name.
func Exact(names ...string) Selector {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return exactSelector{names: set}
}

type prefixSelector struct{ prefix string }

func (s prefixSelector) Match(name string) bool { return strings.HasPrefix(name, s.prefix) }
func (s prefixSelector) String() string         { return fmt.Sprintf("prefix(%q)", s.prefix) }

// Prefix selects every column whose name starts with prefix.
func Prefix(prefix string) Selector { return prefixSelector{prefix: prefix} }

type patternSelector struct{ re *regexp.Regexp }

func (s patternSelector) Match(name string) bool { return s.re.MatchString(name) }
func (s patternSelector) String() string         { return fmt.Sprintf("pattern(%q)", s.re.String()) }

// Pattern selects columns matching the regular expression expr.
func Pattern(expr string) (Selector, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("effect: bad selector pattern: %w", err)
	}

	return patternSelector{re: re}, nil
}

type allSelector struct{}

func (allSelector) Match(string) bool { return true }
func (allSelector) String() string    { return "all()" }

// All selects every available column.
func All() Selector { return allSelector{} }

type noneSelector struct{}

func (noneSelector) Match(string) bool { return false }
func (noneSelector) String() string    { return "none()" }

// None selects no columns. Used by pure time effects (trend, seasonality)
// that need no exogenous input.
func None() Selector { return noneSelector{} }

// MatchColumns evaluates sel against available, preserving available's
// order so downstream matrices are deterministic.
func MatchColumns(sel Selector, available []string) []string {
	var out []string
	for _, name := range available {
		if sel.Match(name) {
			out = append(out, name)
		}
	}

	return out
}
