package usecase

import (
	"context"
	"fmt"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/exporter"
	"realty-content-engine/internal/model"
)

// ListHistory returns stored entries, newest first.
func (uc *implUseCase) ListHistory(ctx context.Context, input content.HistoryListInput) ([]model.HistoryEntry, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return uc.history.List(ctx, repository.ListOptions{
		ContentType: input.ContentType,
		SessionID:   input.SessionID,
		Limit:       limit,
	})
}

// GetHistoryEntry returns one stored entry by id.
func (uc *implUseCase) GetHistoryEntry(ctx context.Context, id int64) (model.HistoryEntry, error) {
	return uc.history.GetByID(ctx, id)
}

// HistoryStats summarizes the persisted content history.
func (uc *implUseCase) HistoryStats(ctx context.Context) (model.HistoryStats, error) {
	return uc.history.Stats(ctx)
}

// DeleteHistoryEntry removes one entry and its vector, when indexed.
func (uc *implUseCase) DeleteHistoryEntry(ctx context.Context, contentType model.ContentType, id int64) error {
	if err := uc.history.Delete(ctx, contentType, id); err != nil {
		return err
	}
	if uc.vectorRepo != nil {
		if err := uc.vectorRepo.DeleteEntry(ctx, contentType, id); err != nil {
			uc.l.Warnf(ctx, "%s: failed to remove vector for entry %d: %v", LogPrefixHistory, id, err)
		}
	}
	return nil
}

// ClearHistory drops every entry of one type, or everything when the
// type is empty. Returns the number of removed entries.
func (uc *implUseCase) ClearHistory(ctx context.Context, contentType model.ContentType) (int64, error) {
	if contentType == "" {
		return uc.history.ClearAll(ctx)
	}
	return uc.history.Clear(ctx, contentType)
}

// ExportHistoryEntry renders one entry in the requested export format.
func (uc *implUseCase) ExportHistoryEntry(ctx context.Context, id int64, format string) (content.ExportOutput, error) {
	if !exporter.Supported(format) {
		return content.ExportOutput{}, fmt.Errorf("%w: %q (supported: %v)", content.ErrUnsupportedFormat, format, exporter.Formats())
	}

	entry, err := uc.history.GetByID(ctx, id)
	if err != nil {
		return content.ExportOutput{}, err
	}

	file, err := exporter.Export(entry, format)
	if err != nil {
		return content.ExportOutput{}, fmt.Errorf("export entry %d: %w", id, err)
	}

	uc.l.Infof(ctx, "%s: exported entry %d as %s (%d bytes)", LogPrefixHistory, id, format, len(file.Body))

	return content.ExportOutput{
		Filename:    file.Name,
		ContentType: file.MIME,
		Body:        file.Body,
	}, nil
}
