package domain

import (
	"fmt"
	"strings"
)

// BadgeColor is symbolic; adapters map it to their own styling.
type BadgeColor int

const (
	BadgeRed BadgeColor = iota
	BadgeGreen
	BadgeBlue
	BadgeOrange
	BadgePurple
	BadgeGray
	BadgeTeal
	BadgePrimary
	BadgeOutline
)

var badgeColorNames = map[BadgeColor]string{
	BadgeRed:     "Red",
	BadgeGreen:   "Green",
	BadgeBlue:    "Blue",
	BadgeOrange:  "Orange",
	BadgePurple:  "Purple",
	BadgeGray:    "Gray",
	BadgeTeal:    "Teal",
	BadgePrimary: "Primary",
	BadgeOutline: "Outline",
}

func (c BadgeColor) String() string {
	if n, ok := badgeColorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("BadgeColor(%d)", int(c))
}

// ParseBadgeColor accepts a color name in any case.
func ParseBadgeColor(s string) (BadgeColor, error) {
	v := strings.TrimSpace(s)
	for c, n := range badgeColorNames {
		if strings.EqualFold(n, v) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown badge color %q", s)
}

// BadgeColors lists the palette in display order.
func BadgeColors() []BadgeColor {
	return []BadgeColor{BadgeRed, BadgeGreen, BadgeBlue, BadgeOrange, BadgePurple, BadgeGray, BadgeTeal, BadgePrimary, BadgeOutline}
}

type Badge struct {
	Text  string
	Color BadgeColor
}
