package utils

import (
	"math/rand"
	"strings"
	"time"
)

// Combine the given strings into a single string with a newline between each
//
// Used for building multi-line flag help text
func CombineStringsWithNewline(strs ...string) string {
	return strings.Join(strs, "\n")
}

// Removes duplicates from the given slice while preserving order
func RemoveSliceDuplicates[T comparable](s []T) []T {
	result := make([]T, 0, len(s))
	seen := make(map[T]struct{})
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Returns a random delay of 1.0 to 1.5 seconds for retries
func GetRandomDelay() time.Duration {
	return time.Duration(1000+rand.Intn(500)) * time.Millisecond
}
