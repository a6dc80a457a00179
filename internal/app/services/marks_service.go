package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/store"
	"github.com/noriyal/madrasa-portal/internal/pkg/apperrors"
)

// MarksService manages subject marks keyed by "<roll>_<session>".
type MarksService interface {
	Load(ctx context.Context, roll int) (dto.MarksResponse, error)
	Save(ctx context.Context, roll int, marks models.SubjectMarks) error
	Result(ctx context.Context, roll int) (dto.ResultResponse, error)
}

type marksServiceImpl struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewMarksService creates a new marks service instance.
func NewMarksService(st *store.Store, logger zerolog.Logger) MarksService {
	return &marksServiceImpl{store: st, logger: logger}
}

// Load returns the mapping held for a student's current session, or
// an empty mapping when nothing was saved yet. The roll must resolve
// to a student so the composite key can be derived.
func (s *marksServiceImpl) Load(ctx context.Context, roll int) (dto.MarksResponse, error) {
	student, ok := s.store.FindByRoll(roll)
	if !ok {
		return dto.MarksResponse{}, apperrors.ErrStudentNotFound
	}

	marks, _ := s.store.LoadMarks(models.MarksKey(student.Roll, student.Session))
	return dto.MarksResponse{
		Roll:    student.Roll,
		Session: student.Session,
		Marks:   marks,
	}, nil
}

// Save overwrites the full mapping under the student's composite key.
func (s *marksServiceImpl) Save(ctx context.Context, roll int, marks models.SubjectMarks) error {
	student, ok := s.store.FindByRoll(roll)
	if !ok {
		return apperrors.ErrStudentNotFound
	}

	key := models.MarksKey(student.Roll, student.Session)
	if err := s.store.SaveMarks(ctx, key, marks); err != nil {
		return fmt.Errorf("error saving marks: %w", err)
	}

	s.logger.Info().Str("key", key).Int("subjects", len(marks)).Msg("Marks saved")
	return nil
}

// Result is the public transcript lookup: the student must exist and
// marks must have been published for their composite key.
func (s *marksServiceImpl) Result(ctx context.Context, roll int) (dto.ResultResponse, error) {
	student, ok := s.store.FindByRoll(roll)
	if !ok {
		return dto.ResultResponse{}, apperrors.ErrStudentNotFound
	}

	marks, published := s.store.LoadMarks(models.MarksKey(student.Roll, student.Session))
	if !published {
		return dto.ResultResponse{}, apperrors.ErrMarksNotFound
	}

	return dto.ResultResponse{
		Roll:    student.Roll,
		NameBN:  student.NameBN,
		Class:   student.Class,
		Session: student.Session,
		Marks:   marks,
	}, nil
}
