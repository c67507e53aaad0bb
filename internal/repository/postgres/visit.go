package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
)

type visitRepository struct {
	BaseRepository
}

func NewVisitRepository(db *sqlx.DB) repository.VisitRepository {
	return &visitRepository{NewBaseRepository(db)}
}

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO visits (id, patient_id, visitor_name, visitor_doc, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	visit.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		visit.ID,
		visit.PatientID,
		visit.VisitorName,
		visit.VisitorDoc,
		visit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *visitRepository) ListRecent(ctx context.Context, limit int) ([]*model.VisitWithPatient, error) {
	query := `
		SELECT v.id, v.patient_id, v.visitor_name, v.visitor_doc, v.created_at,
			   p.name AS patient_name
		FROM visits v
		JOIN patients p ON p.id = v.patient_id
		ORDER BY v.created_at DESC
		LIMIT $1
	`

	visits := []*model.VisitWithPatient{}
	if err := r.db.SelectContext(ctx, &visits, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent visits: %w", err)
	}
	return visits, nil
}

func (r *visitRepository) FindLatestVisitorNameByDoc(ctx context.Context, doc string) (string, error) {
	query := `
		SELECT visitor_name FROM visits
		WHERE visitor_doc = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var name string
	if err := r.db.GetContext(ctx, &name, query, doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("failed to find visitor by document: %w", err)
	}
	return name, nil
}

func (r *visitRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM visits WHERE created_at >= $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}
