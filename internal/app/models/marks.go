package models

import "fmt"

// SubjectMarks maps subject name to the raw score string entered by
// the administrator. Scores are not parsed or range-checked.
type SubjectMarks map[string]string

// MarksBook holds every marks record, keyed by the composite
// "<roll>_<session>" string. No entity links marks to students beyond
// this derived key.
type MarksBook map[string]SubjectMarks

// MarksKey derives the composite key for a roll and session.
func MarksKey(roll int, session string) string {
	return fmt.Sprintf("%d_%s", roll, session)
}
