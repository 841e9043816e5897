// internal/voting/application/application.go
package application

import (
	"context"

	"github.com/xeipuuv/gojsonschema"

	"evoting-client/internal/api"
	"evoting-client/internal/common/errors"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/models"
)

const (
	// ManifestoMinLength matches the backend's serializer rule.
	ManifestoMinLength = 100
	// MaxPhotoSize is the photo upload ceiling in bytes.
	MaxPhotoSize = 5 << 20
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// formSchema validates the assembled payload shape before it ever
// leaves the process.
var formSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"election_id", "position_id", "manifesto"},
	"properties": map[string]interface{}{
		"election_id": map[string]interface{}{"type": "integer", "minimum": 1},
		"position_id": map[string]interface{}{"type": "integer", "minimum": 1},
		"party_id":    map[string]interface{}{"type": "integer", "minimum": 1},
		"manifesto":   map[string]interface{}{"type": "string", "minLength": ManifestoMinLength},
	},
}

// applicationAPI is the slice of the backend client the service needs.
type applicationAPI interface {
	SubmitApplication(ctx context.Context, req api.ApplicationRequest) (*models.Application, error)
	WithdrawApplication(ctx context.Context, applicationID int64) (*models.Application, error)
	MyApplications(ctx context.Context) ([]models.Application, error)
}

// Form is the candidacy application as entered by the student.
type Form struct {
	ElectionID int64
	PositionID int64
	PartyID    *int64
	Manifesto  string
	Photo      *models.PhotoMeta
}

// Service submits and withdraws candidacy applications. All form rules
// are checked locally before any network call.
type Service struct {
	api    applicationAPI
	logger logger.Logger
}

func New(a applicationAPI, log logger.Logger) *Service {
	return &Service{api: a, logger: log}
}

// ValidateForm checks the form against the local rules and returns
// per-field errors.
func (s *Service) ValidateForm(form Form) map[string]interface{} {
	fieldErrors := make(map[string]interface{})

	doc := map[string]interface{}{
		"election_id": int(form.ElectionID),
		"position_id": int(form.PositionID),
		"manifesto":   form.Manifesto,
	}
	if form.PartyID != nil {
		doc["party_id"] = int(*form.PartyID)
	}

	schemaLoader := gojsonschema.NewGoLoader(formSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)
	if result, err := gojsonschema.Validate(schemaLoader, documentLoader); err == nil && !result.Valid() {
		for _, desc := range result.Errors() {
			fieldErrors[desc.Field()] = desc.Description()
		}
	}

	if len(form.Manifesto) < ManifestoMinLength {
		fieldErrors["manifesto"] = "Manifesto must be at least 100 characters."
	}
	if form.Photo != nil {
		if form.Photo.Size > MaxPhotoSize {
			fieldErrors["photo"] = "Photo must be 5MB or smaller."
		} else if !allowedPhotoTypes[form.Photo.ContentType] {
			fieldErrors["photo"] = "Photo must be a JPEG or PNG image."
		}
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// Submit validates the form and creates the application. Server-side
// field errors are surfaced verbatim.
func (s *Service) Submit(ctx context.Context, form Form) (*models.Application, error) {
	if fieldErrors := s.ValidateForm(form); fieldErrors != nil {
		return nil, errors.NewApplicationValidationFailedError(fieldErrors)
	}

	app, err := s.api.SubmitApplication(ctx, api.ApplicationRequest{
		ElectionID: form.ElectionID,
		PositionID: form.PositionID,
		PartyID:    form.PartyID,
		Manifesto:  form.Manifesto,
		Photo:      form.Photo,
	})
	if err != nil {
		if fields := api.FieldsOf(err); len(fields) > 0 {
			return nil, errors.NewApplicationValidationFailedError(fields)
		}
		return nil, errors.NewApplicationSubmitFailedError(api.DetailOf(err), err)
	}

	s.logger.Info("application submitted", map[string]interface{}{
		"application_id": app.ID,
		"election_id":    app.ElectionID,
		"position_id":    app.PositionID,
	})
	return app, nil
}

// Withdraw withdraws a pending application. Non-pending applications
// are refused locally.
func (s *Service) Withdraw(ctx context.Context, app *models.Application) (*models.Application, error) {
	if !app.CanWithdraw() {
		return nil, errors.NewApplicationNotPendingError(string(app.Status))
	}

	withdrawn, err := s.api.WithdrawApplication(ctx, app.ID)
	if err != nil {
		return nil, errors.NewApplicationSubmitFailedError(api.DetailOf(err), err)
	}
	return withdrawn, nil
}

// Mine lists the caller's applications.
func (s *Service) Mine(ctx context.Context) ([]models.Application, error) {
	apps, err := s.api.MyApplications(ctx)
	if err != nil {
		return nil, errors.NewApplicationSubmitFailedError(api.DetailOf(err), err)
	}
	return apps, nil
}
