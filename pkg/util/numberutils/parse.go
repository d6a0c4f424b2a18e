package numberutils

import (
	"strconv"
	"strings"
)

// ToIntWithError converts a base-10 query value to an int.
func ToIntWithError(str string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(str))
}

// ToInt64WithError converts a base-10 query value to an int64, e.g. a Unix time in seconds.
func ToInt64WithError(str string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(str), 10, 64)
}

// ToUint32WithError converts a non-negative base-10 query value that must fit in 32 bits.
func ToUint32WithError(str string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(str), 10, 32)
	return uint32(v), err
}

// ToFloat64WithError converts a decimal query value such as a latitude.
func ToFloat64WithError(str string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// IsIntInRange checks if num is within [min, max].
func IsIntInRange(num, min, max int) bool {
	return num >= min && num <= max
}

// IsFloatInRange checks if num is within [min, max].
func IsFloatInRange(num, min, max float64) bool {
	return num >= min && num <= max
}
