package notify

import "log/slog"

// Type classifies a notification for accent color and icon lookup on the
// client. It has no effect on lifecycle behavior.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// NeutralColor is the fallback when no recognized type is set. The client
// interprets it as "inherit the surrounding color".
const NeutralColor = "currentColor"

// accentColors maps each recognized type to its accent color.
var accentColors = map[Type]string{
	TypeSuccess: "#16a34a",
	TypeError:   "#dc2626",
	TypeWarning: "#d97706",
	TypeInfo:    "#2563eb",
}

// Recognized reports whether t is a member of the fixed type set.
func (t Type) Recognized() bool {
	_, ok := accentColors[t]
	return ok
}

// accentColor resolves the accent color for t. An absent type falls back
// to NeutralColor silently; an unrecognized one falls back with a
// diagnostic, since it usually indicates a typo at the call site.
func accentColor(t Type, logger *slog.Logger) string {
	if t == "" {
		return NeutralColor
	}
	color, ok := accentColors[t]
	if !ok {
		logger.Warn("unrecognized notification type", "type", string(t))
		return NeutralColor
	}
	return color
}
