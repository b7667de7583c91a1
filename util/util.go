package util

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsUnderScore(b byte) bool {
	return b == '_'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsLetterOrUnderscore(b byte) bool {
	return IsLetter(b) || IsUnderScore(b) || b == '$'
}

func IsLetterOrUnderscoreOrNumber(b byte) bool {
	return IsLetterOrUnderscore(b) || IsNumber(b)
}

// IsIdentifier reports whether s is a non empty ascii identifier not starting with a digit.
func IsIdentifier(s string) bool {
	if s == "" || !IsLetterOrUnderscore(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsLetterOrUnderscoreOrNumber(s[i]) {
			return false
		}
	}
	return true
}
