// Package essay holds the client-side essay submission rules: word
// counting, length validation, and the task-type vocabulary. Scoring
// itself is entirely the API server's job.
package essay

import (
	"fmt"
	"strings"
)

// Word-count bounds enforced before any network call is made.
const (
	MinWords = 150
	MaxWords = 320
)

// TaskType identifies which IELTS writing task an essay answers.
type TaskType string

const (
	TaskType1 TaskType = "task1"
	TaskType2 TaskType = "task2"
)

// ParseTaskType maps a form value to a TaskType, defaulting to task2
// (the essay task) for anything unrecognized.
func ParseTaskType(s string) TaskType {
	if TaskType(strings.TrimSpace(strings.ToLower(s))) == TaskType1 {
		return TaskType1
	}
	return TaskType2
}

// WordCount counts whitespace-delimited tokens in the trimmed text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Validate checks an essay's word count against the submission bounds.
// The returned reason is empty for a valid count.
func Validate(wordCount int) (valid bool, reason string) {
	switch {
	case wordCount < MinWords:
		return false, fmt.Sprintf("too short: %d words, minimum is %d", wordCount, MinWords)
	case wordCount > MaxWords:
		return false, fmt.Sprintf("too long: %d words, maximum is %d", wordCount, MaxWords)
	default:
		return true, ""
	}
}
