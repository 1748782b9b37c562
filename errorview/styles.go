// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package errorview

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// Slot names one of the styled elements of the error page.
type Slot string

// The slot set is closed: overrides for any other name are ignored.
const (
	SlotError Slot = "error"
	SlotDesc  Slot = "desc"
	SlotH1    Slot = "h1"
	SlotH2    Slot = "h2"
)

// Slots lists every slot in render order.
var Slots = []Slot{SlotError, SlotDesc, SlotH1, SlotH2}

// Valid reports whether s is one of [Slots].
func (s Slot) Valid() bool {
	return slices.Contains(Slots, s)
}

// Style maps CSS property names to values.
//
// Keys may be written in kebab-case ("font-size") or camelCase ("fontSize");
// both address the same property once canonicalised by [Style.Merge].
type Style map[string]string

// Clone returns a copy of s with canonical property names.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for property, value := range s {
		out[CanonicalProperty(property)] = value
	}

	return out
}

// Merge returns a new style holding every property of s, with the properties
// of override replacing those of the same name.
func (s Style) Merge(override Style) Style {
	out := s.Clone()
	for property, value := range override {
		out[CanonicalProperty(property)] = value
	}

	return out
}

// String renders s as an inline style declaration list.
//
// Properties are sorted by name. A shorthand is a prefix of its longhands
// ("margin" < "margin-right"), so shorthands are always emitted first.
func (s Style) String() string {
	canonical := s.Clone()

	var sb strings.Builder

	for _, property := range slices.Sorted(maps.Keys(canonical)) {
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(property)
		sb.WriteByte(':')
		sb.WriteString(canonical[property])
	}

	return sb.String()
}

// CanonicalProperty converts a camelCase CSS property name to kebab-case.
// Names containing a hyphen are taken as kebab-case and only lowercased.
//
//	fontSize         -> font-size
//	WebkitTransition -> -webkit-transition
//	Font-Size        -> font-size
func CanonicalProperty(name string) string {
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}

	var sb strings.Builder

	sb.Grow(len(name) + 4)

	for _, r := range name {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// StyleSheet holds one style per slot.
type StyleSheet struct {
	Error Style
	Desc  Style
	H1    Style
	H2    Style
}

// Slot returns the style for name, or nil for an unknown slot.
func (sheet StyleSheet) Slot(name Slot) Style {
	switch name {
	case SlotError:
		return sheet.Error
	case SlotDesc:
		return sheet.Desc
	case SlotH1:
		return sheet.H1
	case SlotH2:
		return sheet.H2
	default:
		return nil
	}
}

func (sheet *StyleSheet) set(name Slot, style Style) {
	switch name {
	case SlotError:
		sheet.Error = style
	case SlotDesc:
		sheet.Desc = style
	case SlotH1:
		sheet.H1 = style
	case SlotH2:
		sheet.H2 = style
	}
}

// Clone returns a copy of sheet that shares no maps with it.
func (sheet StyleSheet) Clone() StyleSheet {
	return StyleSheet{
		Error: sheet.Error.Clone(),
		Desc:  sheet.Desc.Clone(),
		H1:    sheet.H1.Clone(),
		H2:    sheet.H2.Clone(),
	}
}

// StyleOverrides holds partial styles keyed by slot.
type StyleOverrides map[Slot]Style

// OverridesFromMap converts a plain nested map, as read from a config file,
// into StyleOverrides.
func OverridesFromMap(m map[string]map[string]string) StyleOverrides {
	if len(m) == 0 {
		return nil
	}

	out := make(StyleOverrides, len(m))
	for slot, properties := range m {
		out[Slot(slot)] = Style(properties).Clone()
	}

	return out
}

// Merge returns o with the slots of other layered on top, property by property.
func (o StyleOverrides) Merge(other StyleOverrides) StyleOverrides {
	if len(o) == 0 && len(other) == 0 {
		return nil
	}

	out := make(StyleOverrides, len(o)+len(other))
	for slot, style := range o {
		out[slot] = style.Clone()
	}

	for slot, style := range other {
		out[slot] = out[slot].Merge(style)
	}

	return out
}

// DefaultStyles returns a fresh copy of the baseline style sheet.
func DefaultStyles() StyleSheet {
	return StyleSheet{
		Error: Style{
			"color":           "#000",
			"background":      "#fff",
			"font-family":     `-apple-system, BlinkMacSystemFont, Roboto, "Segoe UI", "Fira Sans", Avenir, "Helvetica Neue", "Lucida Grande", sans-serif`,
			"height":          "100vh",
			"text-align":      "center",
			"display":         "flex",
			"flex-direction":  "column",
			"align-items":     "center",
			"justify-content": "center",
		},
		Desc: Style{
			"display":        "inline-block",
			"text-align":     "left",
			"line-height":    "49px",
			"height":         "49px",
			"vertical-align": "middle",
		},
		H1: Style{
			"display":        "inline-block",
			"border-right":   "1px solid rgba(0, 0, 0,.3)",
			"margin":         "0",
			"margin-right":   "20px",
			"padding":        "10px 23px 10px 0",
			"font-size":      "24px",
			"font-weight":    "500",
			"vertical-align": "top",
		},
		H2: Style{
			"font-size":   "14px",
			"font-weight": "normal",
			"line-height": "inherit",
			"margin":      "0",
			"padding":     "0",
		},
	}
}

// MergeStyles layers overrides onto base and returns the effective sheet.
//
// Each slot named in overrides is merged property by property; slots absent
// from overrides are copied unchanged. Unknown slot names are ignored.
// base is not modified.
func MergeStyles(base StyleSheet, overrides StyleOverrides) StyleSheet {
	out := base.Clone()

	for slot, style := range overrides {
		if !slot.Valid() {
			log.Debug().
				Str("slot", string(slot)).
				Msg("Ignoring style override for unknown slot")

			continue
		}

		out.set(slot, out.Slot(slot).Merge(style))
	}

	return out
}
