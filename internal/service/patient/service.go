package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospitalar/visitas-api/internal/cache"
	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
)

type PatientService interface {
	AdmitPatient(ctx context.Context, req *model.AdmitPatientRequest) (*model.Patient, error)
	DischargePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	ListAdmittedPatients(ctx context.Context) ([]*model.Patient, error)
}

// ProjectionCache holds the cached read projections and receives a refresh
// signal after every mutation so they are rebuilt on the next request.
type ProjectionCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Invalidate(keys ...string)
}

type Service struct {
	repo  repository.PatientRepository
	cache ProjectionCache
}

func NewService(repo repository.PatientRepository, cache ProjectionCache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) AdmitPatient(ctx context.Context, req *model.AdmitPatientRequest) (*model.Patient, error) {
	if req.Name == "" || req.Room == "" || req.Bed == "" {
		return nil, apperrors.BadRequest("name, room and bed are required", nil)
	}

	patient := &model.Patient{
		Base:   model.Base{ID: uuid.New()},
		Name:   req.Name,
		Room:   req.Room,
		Bed:    req.Bed,
		Status: model.PatientStatusAdmitted,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to admit patient: %w", err)
	}

	s.cache.Invalidate(cache.KeyAdmittedPatients, cache.KeyDashboardStats)
	return patient, nil
}

// DischargePatient moves a patient out of the admitted set. Discharging an
// already discharged patient succeeds; the transition is one-way.
func (s *Service) DischargePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, model.PatientStatusDischarged); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("patient", err)
		}
		return fmt.Errorf("failed to discharge patient: %w", err)
	}

	s.cache.Invalidate(cache.KeyAdmittedPatients, cache.KeyDashboardStats)
	return nil
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	if filters != nil && filters.Status == model.PatientStatusAdmitted {
		return s.ListAdmittedPatients(ctx)
	}

	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// ListAdmittedPatients serves the reception form and the admitted-patient
// board. The list is cached until the next admission or discharge.
func (s *Service) ListAdmittedPatients(ctx context.Context) ([]*model.Patient, error) {
	if cached, found := s.cache.Get(cache.KeyAdmittedPatients); found {
		if patients, ok := cached.([]*model.Patient); ok {
			return patients, nil
		}
	}

	patients, err := s.repo.List(ctx, &model.PatientFilters{Status: model.PatientStatusAdmitted})
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	s.cache.Set(cache.KeyAdmittedPatients, patients)
	return patients, nil
}
