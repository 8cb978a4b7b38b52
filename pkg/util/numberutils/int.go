package numberutils

import "strconv"

// ToInt converts the given string to an integer, returning 0 when the
// string cannot be converted.
func ToInt(s string) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return 0
}

// ToIntWithDefault converts the given string to an integer, returning the
// provided default value when the string cannot be converted.
func ToIntWithDefault(s string, defaultVal int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return defaultVal
}

// IsIntInRange checks if the given number is within the specified range (inclusive).
func IsIntInRange(num, min, max int) bool {
	return num >= min && num <= max
}
