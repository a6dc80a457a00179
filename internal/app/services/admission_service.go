package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noriyal/madrasa-portal/internal/app/models"
	"github.com/noriyal/madrasa-portal/internal/app/models/dto"
	"github.com/noriyal/madrasa-portal/internal/app/store"
	"github.com/noriyal/madrasa-portal/internal/pkg/apperrors"
)

// AdmissionService defines the online admission flow.
type AdmissionService interface {
	Create(ctx context.Context, req dto.AdmissionRequest) (dto.AdmissionResponse, error)
}

type admissionServiceImpl struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewAdmissionService creates a new admission service instance.
func NewAdmissionService(st *store.Store, logger zerolog.Logger) AdmissionService {
	return &admissionServiceImpl{store: st, logger: logger}
}

// validateAdmission re-checks the form's starred fields and the
// payment step. Binding already enforces presence, but whitespace-only
// values must not slip through to the store.
func validateAdmission(req dto.AdmissionRequest) error {
	required := map[string]string{
		"nameBN":    req.NameBN,
		"nameEN":    req.NameEN,
		"class":     req.Class,
		"photo":     req.Photo,
		"reg":       req.Reg,
		"fName":     req.FName,
		"mName":     req.MName,
		"payMethod": req.PayMethod,
		"trx":       req.Trx,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return apperrors.NewValidationError(field + " cannot be empty")
		}
	}
	return nil
}

// Create validates and appends a new admission, returning the roll
// the store assigned.
func (s *admissionServiceImpl) Create(ctx context.Context, req dto.AdmissionRequest) (dto.AdmissionResponse, error) {
	if err := validateAdmission(req); err != nil {
		return dto.AdmissionResponse{}, err
	}

	student := models.Student{
		Reg:        req.Reg,
		NameBN:     req.NameBN,
		NameEN:     req.NameEN,
		Class:      req.Class,
		Branch:     req.Branch,
		DOB:        req.DOB,
		BloodGroup: req.BloodGroup,
		FName:      req.FName,
		FOcc:       req.FOcc,
		FPhone:     req.FPhone,
		MName:      req.MName,
		MOcc:       req.MOcc,
		Addr:       req.Addr,
		Village:    req.Village,
		PostOffice: req.PostOffice,
		Upazila:    req.Upazila,
		District:   req.District,
		Photo:      req.Photo,
		PayMethod:  req.PayMethod,
		Trx:        req.Trx,
	}

	created, err := s.store.CreateAdmission(ctx, student)
	if err != nil {
		return dto.AdmissionResponse{}, fmt.Errorf("error creating admission: %w", err)
	}

	s.logger.Info().Int("roll", created.Roll).Str("class", created.Class).Msg("Admission received")
	return dto.AdmissionResponse{
		Roll:    created.Roll,
		Session: created.Session,
		Status:  string(created.Status),
	}, nil
}
