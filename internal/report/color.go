// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Shared color printers for report tables.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// Success rate thresholds, as fractions.
const (
	goodRate = 0.7
	fairRate = 0.4
)

// ColorSuccessRate colors a percentage cell such as "76.9%": green at or
// above 70%, yellow at or above 40%, red below. Unparseable values pass
// through unchanged.
func ColorSuccessRate(val string) string {
	pct, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
	if err != nil {
		return val
	}
	switch rate := pct / 100; {
	case rate >= goodRate:
		return colorGreen.Sprint(val)
	case rate >= fairRate:
		return colorYellow.Sprint(val)
	default:
		return colorRed.Sprint(val)
	}
}

// ColorFailures colors a failure count: 0 is green, >0 is yellow.
func ColorFailures(val string) string {
	n, err := strconv.Atoi(val)
	if err != nil {
		return val
	}
	if n == 0 {
		return colorGreen.Sprint(val)
	}
	return colorYellow.Sprint(val)
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
