package repository

import (
	"context"
	"fmt"

	"relist/engine/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, record *domain.AnalysisRecord) error
	RecentAnalyses(ctx context.Context, limit int) ([]domain.AnalysisRecord, error)
}

type analysisRepository struct {
	db *pgxpool.Pool
}

func NewAnalysisRepository(db *pgxpool.Pool) AnalysisRepository {
	return &analysisRepository{
		db: db,
	}
}

func (r *analysisRepository) SaveAnalysis(ctx context.Context, record *domain.AnalysisRecord) error {
	query := `
	INSERT INTO analysis_history (id, title, result, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id)
	DO UPDATE SET title = $2, result = $3`
	_, err := r.db.Exec(ctx, query, record.ID, record.Title, record.Result, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}

	return nil
}

func (r *analysisRepository) RecentAnalyses(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	query := `
	SELECT id, title, result, created_at
	FROM analysis_history
	ORDER BY created_at DESC
	LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent analyses: %w", err)
	}
	defer rows.Close()

	records := make([]domain.AnalysisRecord, 0, limit)
	for rows.Next() {
		var record domain.AnalysisRecord
		if err := rows.Scan(&record.ID, &record.Title, &record.Result, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
