package util

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsHexDigit(b byte) bool {
	return IsNumber(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func IsUnderScore(b byte) bool {
	return b == '_'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsLetterOrUnderscoreOrNumber(b byte) bool {
	return IsLetter(b) || IsUnderScore(b) || IsNumber(b)
}

// IsLabelCharacter reports whether b may appear in a source label name.
// Dots are allowed here; they are rewritten before the label is emitted.
func IsLabelCharacter(b byte) bool {
	return IsLetterOrUnderscoreOrNumber(b) || b == '.'
}
