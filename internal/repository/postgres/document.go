package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = "id, project_id, user_id, title, content, version, version_notes, videos_included, created_at, updated_at"

func scanDocument(row interface{ Scan(dest ...any) error }, d *models.Document) error {
	return row.Scan(
		&d.ID,
		&d.ProjectID,
		&d.UserID,
		&d.Title,
		&d.Content,
		&d.Version,
		&d.VersionNotes,
		&d.VideosIncluded,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

// Create inserts a new document. The project_id unique constraint keeps one
// live document per project.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, user_id, title, content, version, version_notes, videos_included, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.UserID,
		doc.Title,
		doc.Content,
		doc.Version,
		doc.VersionNotes,
		doc.VideosIncluded,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			existing, queryErr := r.GetByProject(ctx, doc.ProjectID, doc.UserID)
			if queryErr != nil {
				return fmt.Errorf("document for project %s already exists: %w", doc.ProjectID, domain.ErrConflict)
			}

			return &domain.ConflictError{
				Message:      fmt.Sprintf("document for project %s already exists", doc.ProjectID),
				ResourceType: "document",
				ResourceID:   existing.ID,
			}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := scanDocument(executor.QueryRow(ctx, query, id, userID), &doc)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// GetByProject retrieves the project's document
func (r *PostgresDocumentRepository) GetByProject(ctx context.Context, projectID, userID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND user_id = $2
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := scanDocument(executor.QueryRow(ctx, query, projectID, userID), &doc)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document for project %s: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document by project: %w", err)
	}

	return &doc, nil
}

// Update replaces title, content, version, notes and video count
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, version = $3, version_notes = $4, videos_included = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Title,
		doc.Content,
		doc.Version,
		doc.VersionNotes,
		doc.VideosIncluded,
		doc.UpdatedAt,
		doc.ID,
		doc.UserID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByUser counts the user's documents
func (r *PostgresDocumentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, r.tables.Documents)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	return count, nil
}
