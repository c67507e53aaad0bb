package visit

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

// MaxRecentVisits caps the recent-visit history page.
const (
	MaxRecentVisits     = 20
	DefaultRecentVisits = 10
)

type VisitService interface {
	RegisterVisit(ctx context.Context, req *model.RegisterVisitRequest) (*model.Visit, error)
	ListRecentVisits(ctx context.Context, limit int) ([]*model.VisitWithPatient, error)
	SuggestVisitorName(ctx context.Context, doc string) (string, error)
}

// ProjectionCache holds the cached recent-visit projection and receives a
// refresh signal after every check-in.
type ProjectionCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Invalidate(keys ...string)
}

type Service struct {
	repo        repository.VisitRepository
	patientRepo repository.PatientRepository
	cache       ProjectionCache
}

func NewService(repo repository.VisitRepository, patientRepo repository.PatientRepository, cache ProjectionCache) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, cache: cache}
}

// RegisterVisit records a visitor check-in for an admitted patient. Visits
// are immutable once written.
func (s *Service) RegisterVisit(ctx context.Context, req *model.RegisterVisitRequest) (*model.Visit, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient ID", err)
	}
	if req.VisitorName == "" || req.VisitorDoc == "" {
		return nil, apperrors.BadRequest("visitor name and document are required", nil)
	}

	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}
	if patient.Status != model.PatientStatusAdmitted {
		return nil, apperrors.BadRequest("patient is not admitted", nil)
	}

	visit := &model.Visit{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		VisitorName: req.VisitorName,
		VisitorDoc:  req.VisitorDoc,
	}

	if err := s.repo.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to register visit: %w", err)
	}

	s.cache.Invalidate(cache.KeyRecentVisits, cache.KeyDashboardStats)
	return visit, nil
}

func (s *Service) ListRecentVisits(ctx context.Context, limit int) ([]*model.VisitWithPatient, error) {
	if limit <= 0 {
		limit = DefaultRecentVisits
	}
	if limit > MaxRecentVisits {
		limit = MaxRecentVisits
	}

	// Only the default page size is cached; ad-hoc limits go to storage.
	if limit == DefaultRecentVisits {
		if cached, found := s.cache.Get(cache.KeyRecentVisits); found {
			if visits, ok := cached.([]*model.VisitWithPatient); ok {
				return visits, nil
			}
		}
	}

	visits, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent visits: %w", err)
	}

	if limit == DefaultRecentVisits {
		s.cache.Set(cache.KeyRecentVisits, visits)
	}
	return visits, nil
}

// SuggestVisitorName returns the visitor name used on the most recent visit
// matching doc. An unknown document yields an empty suggestion, not an error.
func (s *Service) SuggestVisitorName(ctx context.Context, doc string) (string, error) {
	if doc == "" {
		return "", apperrors.BadRequest("document is required", nil)
	}

	name, err := s.repo.FindLatestVisitorNameByDoc(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up visitor document: %w", err)
	}
	return name, nil
}
