package dto

import "github.com/noriyal/madrasa-portal/internal/app/models"

// SaveMarksRequest overwrites the full subject->score mapping for one
// student's current session.
type SaveMarksRequest struct {
	Marks models.SubjectMarks `json:"marks" binding:"required"`
}

// MarksResponse returns the mapping held for a composite marks key.
type MarksResponse struct {
	Roll    int                 `json:"roll" example:"10001"`
	Session string              `json:"session" example:"2026-27"`
	Marks   models.SubjectMarks `json:"marks"`
}

// ResultResponse is the public transcript view: the student header
// plus their published marks.
type ResultResponse struct {
	Roll    int                 `json:"roll" example:"10001"`
	NameBN  string              `json:"nameBN"`
	Class   string              `json:"class"`
	Session string              `json:"session" example:"2026-27"`
	Marks   models.SubjectMarks `json:"marks"`
}
