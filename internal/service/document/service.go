// Package document exposes the project document surface: synthesis, manual
// edits and deletion.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"voicedeck/internal/domain"
	"voicedeck/internal/domain/models"
	"voicedeck/internal/domain/repositories"
	"voicedeck/internal/domain/services"
	"voicedeck/internal/service/synthesize"
)

type documentService struct {
	docRepo     repositories.DocumentRepository
	synthesizer *synthesize.Synthesizer
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewService creates the document service.
func NewService(
	docRepo repositories.DocumentRepository,
	synthesizer *synthesize.Synthesizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:     docRepo,
		synthesizer: synthesizer,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *documentService) Synthesize(ctx context.Context, projectID, userID string) (*models.Document, error) {
	return s.synthesizer.Synthesize(ctx, projectID, userID)
}

func (s *documentService) GetByProject(ctx context.Context, projectID, userID string) (*models.Document, error) {
	return s.docRepo.GetByProject(ctx, projectID, userID)
}

// UpdateDocument applies a manual edit. Manual edits version exactly like a
// resynthesis: the content is replaced and Version goes up by 1.
func (s *documentService) UpdateDocument(ctx context.Context, id, userID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Read and write run in one transaction so two concurrent edits
	// cannot both bump the same version.
	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.docRepo.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			doc.Title = *req.Title
		}
		if req.Content != nil {
			doc.Content = *req.Content
		}
		doc.Version++
		doc.VersionNotes = "Manual edit"
		doc.UpdatedAt = time.Now()

		return s.docRepo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document edited", "id", doc.ID, "version", doc.Version, "user_id", userID)

	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id, userID string) error {
	if err := s.docRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id, "user_id", userID)

	return nil
}

func validateUpdateRequest(req *services.UpdateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
		validation.Field(&req.Content, validation.NilOrNotEmpty),
	)
}
