// Expansion of compressed Slurm node lists.
//
// sacct emits the NodeList field in compressed form, per this grammar:
//
//	multi-pattern ::= pattern ("," pattern)*
//	pattern       ::= fragment+
//	fragment      ::= literal | range
//	literal       ::= <longest nonempty string of characters not containing "[" or ",">
//	range         ::= "[" range-elt ("," range-elt)* "]"
//	range-elt     ::= number | number "-" number
//
// Numbers in node names are zero-padded ("n[0335-0340]" names n0335 through n0340) and the
// padding must be preserved on expansion, so range endpoints are kept as strings and the width
// of the low endpoint decides the format.
//
// Jobs that were cancelled before any node was assigned have the literal NodeList
// "None assigned"; that expands to the empty list.

package slurm

import (
	"fmt"
	"strconv"
	"strings"
)

const noneAssigned = "None assigned"

func ExpandNodeList(s string) ([]string, error) {
	if s == "" || s == noneAssigned {
		return nil, nil
	}
	patterns, err := splitMultiPattern(s)
	if err != nil {
		return nil, err
	}
	nodes := make([]string, 0, len(patterns))
	for _, p := range patterns {
		expanded, err := expandPattern(p)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, expanded...)
	}
	return nodes, nil
}

// Split a multi-pattern on the commas that are not inside brackets.

func splitMultiPattern(s string) ([]string, error) {
	patterns := make([]string, 0)
	insideBrackets := false
	start := -1
	for ix, c := range s {
		switch {
		case c == '[':
			if insideBrackets {
				return nil, fmt.Errorf("Bad node list %q: nested brackets", s)
			}
			insideBrackets = true
		case c == ']':
			if !insideBrackets {
				return nil, fmt.Errorf("Bad node list %q: unmatched end bracket", s)
			}
			insideBrackets = false
		case c == ',' && !insideBrackets:
			if start == -1 {
				return nil, fmt.Errorf("Bad node list %q: empty node name", s)
			}
			patterns = append(patterns, s[start:ix])
			start = -1
			continue
		}
		if start == -1 {
			start = ix
		}
	}
	if insideBrackets {
		return nil, fmt.Errorf("Bad node list %q: missing end bracket", s)
	}
	if start == -1 {
		return nil, fmt.Errorf("Bad node list %q: empty node name", s)
	}
	patterns = append(patterns, s[start:])
	return patterns, nil
}

func expandPattern(s string) ([]string, error) {
	heads := []string{""}
	for len(s) > 0 {
		if s[0] == '[' {
			end := strings.IndexByte(s, ']')
			if end == -1 {
				return nil, fmt.Errorf("Bad node pattern %q: missing end bracket", s)
			}
			nums, err := expandRange(s[1:end])
			if err != nil {
				return nil, err
			}
			expanded := make([]string, 0, len(heads)*len(nums))
			for _, h := range heads {
				for _, n := range nums {
					expanded = append(expanded, h+n)
				}
			}
			heads = expanded
			s = s[end+1:]
		} else {
			end := strings.IndexByte(s, '[')
			if end == -1 {
				end = len(s)
			}
			for i := range heads {
				heads[i] += s[:end]
			}
			s = s[end:]
		}
	}
	return heads, nil
}

func expandRange(body string) ([]string, error) {
	nums := make([]string, 0)
	for _, elt := range strings.Split(body, ",") {
		lo, hi, isRange := strings.Cut(elt, "-")
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("Bad node range %q: %w", body, err)
		}
		if !isRange {
			nums = append(nums, lo)
			continue
		}
		b, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("Bad node range %q: %w", body, err)
		}
		if a > b {
			return nil, fmt.Errorf("Bad node range %q: low bound above high bound", body)
		}
		width := len(lo)
		for n := a; n <= b; n++ {
			nums = append(nums, fmt.Sprintf("%0*d", width, n))
		}
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("Bad node range %q: empty", body)
	}
	return nums, nil
}
