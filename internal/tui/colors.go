package tui

// Color constants for the taskbit TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Field labels, user input, titles
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240"

	// Accent Colors
	ColorAccentMain   = "#0EA5E9" // Logo, active borders
	ColorAccentBright = "#7DD3FC" // Highlights, current field

	// State Colors
	ColorError   = "#EF4444" // Validation errors, overdue, alta
	ColorSuccess = "#22C55E" // Completada
	ColorWarning = "#F59E0B" // Due soon, media, En progreso
)

// statusColor picks the colour of a task status
func statusColor(status string) string {
	switch status {
	case "Completada":
		return ColorSuccess
	case "En progreso":
		return ColorWarning
	default:
		return ColorSecondaryText
	}
}

// priorityColor picks the colour of a priority weight
func priorityColor(weight int) string {
	switch weight {
	case 3:
		return ColorError
	case 2:
		return ColorWarning
	case 1:
		return ColorSecondaryText
	default:
		return ColorDisabledText
	}
}
