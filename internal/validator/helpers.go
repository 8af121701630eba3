package validator

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var RgxPhoneNumber = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

func Between[T int | int64 | float64 | string](value, min, max T) bool {
	return value >= min && value <= max
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func In[T comparable](value T, safelist ...T) bool {
	return slices.Contains(safelist, value)
}

func IsInteger(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

func IsPositive[T int | int64 | float64](value T) bool {
	return value > 0
}
