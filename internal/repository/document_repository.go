package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/models"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Document, error)
	List(ctx context.Context, limit, offset int) ([]models.Document, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type documentRepository struct {
	*PostgresRepository
}

func NewDocumentRepository(db *sql.DB, logger zerolog.Logger) DocumentRepository {
	return &documentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, name, content, source, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Name, doc.Content, string(doc.Source), doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `
		SELECT id, name, content, source, created_at
		FROM documents
		WHERE id = $1
	`

	doc := &models.Document{}
	var source string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.Name, &doc.Content, &source, &doc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	doc.Source = models.DocumentSource(source)

	return doc, nil
}

func (r *documentRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrDocumentNotFound) {
				return nil, fmt.Errorf("document %s: %w", id, err)
			}
			return nil, err
		}
		docs = append(docs, *doc)
	}

	return docs, nil
}

func (r *documentRepository) List(ctx context.Context, limit, offset int) ([]models.Document, error) {
	query := `
		SELECT id, name, content, source, created_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		var source string
		err := rows.Scan(&doc.ID, &doc.Name, &doc.Content, &source, &doc.CreatedAt)
		if err != nil {
			return nil, err
		}
		doc.Source = models.DocumentSource(source)
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, id,
	).Scan(&exists)

	return exists, err
}

func (r *documentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)

	return count, err
}
