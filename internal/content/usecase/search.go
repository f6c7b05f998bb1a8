package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/model"
)

// SearchHistory finds stored content, semantically when the vector index
// is configured, by substring otherwise.
func (uc *implUseCase) SearchHistory(ctx context.Context, input content.SearchInput) (content.SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return content.SearchOutput{}, content.ErrEmptyQuery
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if uc.vectorRepo != nil {
		out, err := uc.semanticSearch(ctx, input.Query, input.ContentType, limit)
		if err == nil {
			return out, nil
		}
		uc.l.Warnf(ctx, "%s: semantic search failed, falling back to substring: %v", LogPrefixSearch, err)
	}

	entries, err := uc.history.Search(ctx, repository.SearchOptions{
		Term:        input.Query,
		ContentType: input.ContentType,
		Limit:       limit,
	})
	if err != nil {
		return content.SearchOutput{}, fmt.Errorf("search history: %w", err)
	}

	results := make([]content.SearchResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, content.SearchResult{Entry: e})
	}
	return content.SearchOutput{Results: results}, nil
}

func (uc *implUseCase) semanticSearch(ctx context.Context, query string, contentType model.ContentType, limit int) (content.SearchOutput, error) {
	hits, err := uc.vectorRepo.SearchEntries(ctx, repository.VectorSearchOptions{
		Query:       query,
		Limit:       limit,
		ContentType: contentType,
	})
	if err != nil {
		return content.SearchOutput{}, err
	}

	results := make([]content.SearchResult, 0, len(hits))
	zombies := 0

	for _, hit := range hits {
		entry, err := uc.history.GetByID(ctx, hit.EntryID)
		if err != nil {
			// Entry evicted from sqlite but still indexed. Self-healing:
			// drop the stale vector so it stops surfacing.
			if errors.Is(err, repository.ErrEntryNotFound) {
				zombies++
				go func(id int64, t model.ContentType) {
					cleanupCtx := context.Background()
					if err := uc.vectorRepo.DeleteEntry(cleanupCtx, t, id); err != nil {
						uc.l.Errorf(cleanupCtx, "%s: failed to cleanup stale vector %d: %v", LogPrefixSearch, id, err)
					} else {
						uc.l.Infof(cleanupCtx, "%s: cleaned up stale vector %d", LogPrefixSearch, id)
					}
				}(hit.EntryID, entryType(hit))
				continue
			}
			uc.l.Warnf(ctx, "%s: failed to hydrate entry %d: %v", LogPrefixSearch, hit.EntryID, err)
			continue
		}

		results = append(results, content.SearchResult{Entry: entry, Score: hit.Score})
	}

	if zombies > 0 {
		uc.l.Infof(ctx, "%s: removed %d stale vectors during search", LogPrefixSearch, zombies)
	}

	return content.SearchOutput{Results: results, Semantic: true}, nil
}

// entryType recovers the content type from the vector payload so stale
// vectors can be deleted from the right collection partition.
func entryType(hit repository.VectorResult) model.ContentType {
	if t, ok := hit.Payload["content_type"].(string); ok {
		return model.ContentType(t)
	}
	return ""
}
