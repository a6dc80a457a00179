package dto

import "github.com/noriyal/madrasa-portal/internal/app/models"

// BackupDocument bundles all three collections into one downloadable
// JSON document, and doubles as the restore request body.
type BackupDocument struct {
	Students []models.Student      `json:"students"`
	Config   models.PortalSettings `json:"config"`
	Marks    models.MarksBook      `json:"marks"`
}
