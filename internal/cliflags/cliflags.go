// Package cliflags hand-parses the command line grammar from spec §6: a
// token is a flag iff it matches -[A-Za-z]; anything else is the value of
// the preceding flag. Flags are unordered, each optional, and a later
// repetition of the same flag overwrites an earlier one. This grammar
// does not fit a standard flag/pflag binder (no "--" requirement, no
// typed value parsing at the library level), so it is parsed by hand in
// the style of the teacher's own hand-rolled argument handling.
package cliflags

import (
	"fmt"
	"regexp"
	"strconv"
)

var flagToken = regexp.MustCompile(`^-[A-Za-z]`)

// Set holds the raw parsed flags: booleans present/absent, and
// string values for everything else. Repeated flags keep the last value
// seen, matching spec §6's "later repetitions overwrite earlier values".
type Set struct {
	values map[string]string
	bools  map[string]bool
}

// Parse walks args (normally os.Args[1:]) applying the §6 grammar.
func Parse(args []string) *Set {
	s := &Set{values: make(map[string]string), bools: make(map[string]bool)}

	var current string
	haveCurrent := false
	for _, arg := range args {
		if flagToken.MatchString(arg) {
			if haveCurrent {
				s.bools[current] = true
			}
			current = arg[1:]
			haveCurrent = true
			continue
		}
		if haveCurrent {
			s.values[current] = arg
			haveCurrent = false
		}
	}
	if haveCurrent {
		s.bools[current] = true
	}
	return s
}

// String returns the value bound to name, or def if name was never set
// to a value (it may still be present as a bare boolean flag).
func (s *Set) String(name, def string) string {
	if v, ok := s.values[name]; ok {
		return v
	}
	return def
}

// StringOK returns the value bound to name and whether it was present at
// all, as either a value or a bare flag.
func (s *Set) StringOK(name string) (string, bool) {
	if v, ok := s.values[name]; ok {
		return v, true
	}
	if s.bools[name] {
		return "", true
	}
	return "", false
}

// Bool reports whether name was present, with or without a value.
func (s *Set) Bool(name string) bool {
	_, inValues := s.values[name]
	return inValues || s.bools[name]
}

// Int returns the integer bound to name, or def with a nil error if name
// has no value. A value that does not parse as an integer yields def
// together with a non-nil error.
func (s *Set) Int(name string, def int) (int, error) {
	v, ok := s.values[name]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("parse -%s value %q: %w", name, v, err)
	}
	return n, nil
}
