// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package parse converts the raw textual fields found in scraped movie
// datasets into typed values.
//
// Every function in this package is pure and total: malformed input degrades
// to a not-ok result, never to an error or a panic. The missing-data policy
// in the dataset package defines what happens to not-ok values downstream.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// magnitudePattern matches a decimal number with an optional K/M suffix
// after non-numeric characters have been stripped.
var magnitudePattern = regexp.MustCompile(`^(\d*\.?\d*)([KM]?)$`)

// ParseDuration converts a free-text runtime such as "2h 15m", "2h" or "90m"
// into total minutes. Matching is case-insensitive and tolerant of
// surrounding whitespace. Any input that does not carry an explicit h or m
// unit, or whose numeric parts fail to parse, reports ok=false.
func ParseDuration(text string) (minutes int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}

	if i := strings.IndexByte(s, 'h'); i >= 0 {
		h, err := strconv.Atoi(strings.TrimSpace(s[:i]))
		if err != nil || h < 0 {
			return 0, false
		}

		m := 0
		rest := strings.TrimSpace(s[i+1:])
		if rest != "" {
			if !strings.Contains(rest, "m") {
				return 0, false
			}
			m, err = strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(rest, "m", "")))
			if err != nil || m < 0 {
				return 0, false
			}
		}

		return h*60 + m, true
	}

	if strings.Contains(s, "m") {
		m, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, "m", "")))
		if err != nil || m < 0 {
			return 0, false
		}
		return m, true
	}

	return 0, false
}

// ParseMagnitude converts an abbreviated numeric string such as "1.5M",
// "250K" or "$12,000" into a float. All characters except digits, the
// decimal point and the letters K/M are stripped first, so currency symbols
// and thousands separators are tolerated. K multiplies by 1,000 and M by
// 1,000,000. An empty numeric part reports ok=false.
func ParseMagnitude(text string) (value float64, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(text))

	var cleaned strings.Builder
	cleaned.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == 'K' || r == 'M' {
			cleaned.WriteRune(r)
		}
	}

	groups := magnitudePattern.FindStringSubmatch(cleaned.String())
	if groups == nil {
		return 0, false
	}

	number, suffix := groups[1], groups[2]
	if number == "" || number == "." {
		return 0, false
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}

	switch suffix {
	case "K":
		v *= 1_000
	case "M":
		v *= 1_000_000
	}

	return v, true
}

// ParseCategoryList interprets a textual list literal such as
// `['Action', 'Drama']` and returns the contained labels. Both single and
// double quotes are accepted. Any malformed input returns an empty list,
// never an error.
func ParseCategoryList(text string) []string {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil
	}

	var items []string
	rest := inner
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			// Trailing comma with nothing after it.
			return nil
		}

		quote := rest[0]
		if quote != '\'' && quote != '"' {
			return nil
		}

		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return nil
		}
		items = append(items, rest[1:1+end])

		rest = strings.TrimLeft(rest[2+end:], " \t")
		if rest == "" {
			return items
		}
		if rest[0] != ',' {
			return nil
		}
		rest = rest[1:]
	}
}
