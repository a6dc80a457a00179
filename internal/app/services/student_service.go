package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/store"
	"github.com/noriyal/madrasa-portal/internal/pkg/apperrors"
)

// StudentService covers record lifecycle and the public lookups.
type StudentService interface {
	List(ctx context.Context) []models.Student
	Track(ctx context.Context, roll int) (dto.TrackingResponse, error)
	FindByReg(ctx context.Context, reg string) (models.Student, error)
	Upsert(ctx context.Context, req dto.ManualEntryRequest) (models.Student, bool, error)
	Verify(ctx context.Context, id string) (models.Student, error)
	Delete(ctx context.Context, id string) error
}

type studentServiceImpl struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewStudentService creates a new student service instance.
func NewStudentService(st *store.Store, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{store: st, logger: logger}
}

// List returns all students, newest roll first, the order the admin
// applicant table shows.
func (s *studentServiceImpl) List(ctx context.Context) []models.Student {
	students := s.store.Students()
	sort.Slice(students, func(i, j int) bool { return students[i].Roll > students[j].Roll })
	return students
}

// Track reports the verification state for a roll.
func (s *studentServiceImpl) Track(ctx context.Context, roll int) (dto.TrackingResponse, error) {
	student, ok := s.store.FindByRoll(roll)
	if !ok {
		return dto.TrackingResponse{}, apperrors.ErrStudentNotFound
	}
	return dto.TrackingResponse{
		Roll:   student.Roll,
		NameBN: student.NameBN,
		Class:  student.Class,
		Status: string(student.Status),
	}, nil
}

// FindByReg returns the first student matching a registration number.
func (s *studentServiceImpl) FindByReg(ctx context.Context, reg string) (models.Student, error) {
	student, ok := s.store.FindByReg(reg)
	if !ok {
		return models.Student{}, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// Upsert applies a manual entry: update-in-place by roll, or create a
// new Verified record.
func (s *studentServiceImpl) Upsert(ctx context.Context, req dto.ManualEntryRequest) (models.Student, bool, error) {
	if req.Roll <= 0 {
		return models.Student{}, false, apperrors.NewValidationError("roll must be positive")
	}
	if strings.TrimSpace(req.NameBN) == "" {
		return models.Student{}, false, apperrors.NewValidationError("nameBN cannot be empty")
	}
	if strings.TrimSpace(req.Class) == "" {
		return models.Student{}, false, apperrors.NewValidationError("class cannot be empty")
	}

	student, created, err := s.store.UpsertManual(ctx, req.ToDraft())
	if err != nil {
		return models.Student{}, false, fmt.Errorf("error saving manual entry: %w", err)
	}

	s.logger.Info().Int("roll", student.Roll).Bool("created", created).Msg("Manual entry saved")
	return student, created, nil
}

// Verify approves a pending admission by id.
func (s *studentServiceImpl) Verify(ctx context.Context, id string) (models.Student, error) {
	student, err := s.store.Verify(ctx, id)
	if err != nil {
		return models.Student{}, err
	}
	s.logger.Info().Int("roll", student.Roll).Msg("Student verified")
	return student, nil
}

// Delete permanently removes a record by id.
func (s *studentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Student deleted")
	return nil
}
