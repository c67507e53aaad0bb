package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalar/visitas-api/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type VisitRepository interface {
	Create(ctx context.Context, visit *model.Visit) error
	ListRecent(ctx context.Context, limit int) ([]*model.VisitWithPatient, error)
	FindLatestVisitorNameByDoc(ctx context.Context, doc string) (string, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}
