package widths

// approxMeasurer estimates rendered widths from per-rune advance
// factors for a proportional UI font. It is deterministic and needs no
// rendering surface; a live page replaces it with real DOM measurement.
type approxMeasurer struct{}

const defaultFontSize = 16.0

func (approxMeasurer) MeasureWidth(text string, font Font) float64 {
	size := font.Size
	if size <= 0 {
		size = defaultFontSize
	}
	var width float64
	for _, r := range text {
		width += advanceFactor(r)
	}
	return width * size
}

// advanceFactor approximates a rune's advance as a fraction of the font
// size.
func advanceFactor(r rune) float64 {
	switch {
	case r == ' ':
		return 0.30
	case r == 'i' || r == 'j' || r == 'l' || r == 't' || r == 'f' ||
		r == '.' || r == ',' || r == ':' || r == ';' || r == '\'' || r == '|':
		return 0.30
	case r == 'm' || r == 'w' || r == 'M' || r == 'W' || r == '@':
		return 0.85
	case r >= 'A' && r <= 'Z':
		return 0.68
	case r >= '0' && r <= '9':
		return 0.55
	case r > 0xFF:
		// Treat everything outside Latin-1 as full width.
		return 1.0
	default:
		return 0.52
	}
}
