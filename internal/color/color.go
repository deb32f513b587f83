// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package color parses and formats the hex colors used by LMS custom colors
// and computes WCAG contrast for them.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned by [Parse] for strings that are not "#rgb",
// "#argb", "#rrggbb" or "#aarrggbb".
var ErrInvalidHex = errors.New("invalid hex color")

// MinContrast is the WCAG AA contrast ratio for normal text.
const MinContrast = 4.5

var (
	White = Color{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1}
	Black = Color{Color: colorful.Color{}, Alpha: 1}
)

// Color is an sRGB color with alpha. All channels are in [0, 1].
type Color struct {
	colorful.Color
	Alpha float64
}

// Parse parses a "#"-prefixed hex color. Alpha comes first in the four and
// eight digit forms.
func Parse(s string) (Color, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok || digits == "" {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	num, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	var r, g, b, a uint64 = 0, 0, 0, 0xff
	switch len(digits) {
	case 8:
		a = num >> 24 & 0xff
		fallthrough
	case 6:
		r, g, b = num>>16&0xff, num>>8&0xff, num&0xff
	case 4:
		a = expand(num >> 12 & 0xf)
		fallthrough
	case 3:
		r, g, b = expand(num>>8&0xf), expand(num>>4&0xf), expand(num&0xf)
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	return Color{
		Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		Alpha: float64(a) / 255,
	}, nil
}

// Normalize parses s and formats it back with [Color.Hex].
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

func expand(nibble uint64) uint64 {
	return nibble<<4 | nibble
}

// Hex formats the color as "#rrggbb" when it is opaque and "#aarrggbb"
// otherwise, in lower case.
func (c Color) Hex() string {
	a := toByte(c.Alpha)
	if a == 0xff {
		return c.Clamped().Hex()
	}
	return fmt.Sprintf("#%02x%s", a, strings.TrimPrefix(c.Clamped().Hex(), "#"))
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Luminance is the WCAG relative luminance, 0 for black and 1 for white.
func (c Color) Luminance() float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Contrast is the WCAG contrast ratio between c and other, from 1 for
// identical colors up to 21 for black against white.
func (c Color) Contrast(other Color) float64 {
	l1 := c.Luminance() + 0.05
	l2 := other.Luminance() + 0.05
	if l1 > l2 {
		return l1 / l2
	}
	return l2 / l1
}

// EnsureContrast returns c unchanged unless highContrast is requested and c
// does not reach [MinContrast] against background. In that case brightness
// is shifted away from the background's luminance, then saturation is
// reduced, until the ratio is met.
func (c Color) EnsureContrast(background Color, highContrast bool) Color {
	if !highContrast || c.Contrast(background) >= MinContrast {
		return c
	}

	h, s, v := c.Hsv()
	delta := -0.01
	if background.Luminance() < 0.5 {
		delta = 0.01
	}

	result := c
	for result.Contrast(background) < MinContrast && s >= 0 && s <= 1 {
		if v >= 0 && v <= 1 {
			v += delta
		} else {
			s -= 0.01
		}
		result = Color{
			Color: colorful.Hsv(h, math.Max(0, math.Min(1, s)), math.Max(0, math.Min(1, v))),
			Alpha: c.Alpha,
		}
	}
	return result
}
