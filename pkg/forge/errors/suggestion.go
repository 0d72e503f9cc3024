package errors

import (
	"fmt"
	"strings"
)

// SuggestKey suggests possible field keys when an unknown field is
// referenced. It uses Levenshtein distance to find similar keys.
func SuggestKey(unknown string, validKeys []string) string {
	if len(validKeys) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, key := range validKeys {
		dist := levenshteinDistance(unknown, key)
		if dist < minDistance {
			minDistance = dist
			bestMatch = key
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("did you mean %q?", bestMatch)
	}

	if len(validKeys) > 5 {
		return fmt.Sprintf("declared fields include: %s, ...", strings.Join(validKeys[:5], ", "))
	}
	return fmt.Sprintf("declared fields: %s", strings.Join(validKeys, ", "))
}

// SuggestTag suggests a known tag when an unknown type or operator tag is
// encountered during deserialization.
func SuggestTag(unknown string, validTags []string) string {
	if len(validTags) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, tag := range validTags {
		dist := levenshteinDistance(unknown, tag)
		if dist < minDistance {
			minDistance = dist
			bestMatch = tag
		}
	}

	if minDistance < 5 {
		return fmt.Sprintf("did you mean %q?", bestMatch)
	}
	return ""
}

// SuggestOperators lists the legal operators for a field type, used when a
// clause applies an operator outside the field's catalog.
func SuggestOperators(fieldType string, validOps []string) string {
	return fmt.Sprintf("operators for %s fields: %s", fieldType, strings.Join(validOps, ", "))
}

// levenshteinDistance computes the Levenshtein distance between two strings.
// This is used for finding similar field keys and tags for suggestions.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
