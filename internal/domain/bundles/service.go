package bundles

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ehr/nhcx-viewer/internal/domain/workflow"
	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
)

// DefaultConcurrency bounds parallel retrievals while listing.
const DefaultConcurrency = 4

type Service struct {
	repo        Repository
	ids         []string
	concurrency int
	logger      zerolog.Logger
}

// NewService lists ids, or DefaultBundleIDs when ids is empty.
func NewService(repo Repository, ids []string, logger zerolog.Logger) *Service {
	if len(ids) == 0 {
		ids = DefaultBundleIDs
	}
	return &Service{
		repo:        repo,
		ids:         ids,
		concurrency: DefaultConcurrency,
		logger:      logger.With().Str("component", "bundles").Logger(),
	}
}

// Candidates returns the identifiers ListBundles considers.
func (s *Service) Candidates() []string { return s.ids }

// ListBundles retrieves every candidate and classifies it. Missing bundles
// and unreadable ones are skipped; the first other failure aborts the
// listing and is returned unchanged. Order follows the candidate list.
func (s *Service) ListBundles(ctx context.Context) ([]Info, error) {
	found := make([]*Info, len(s.ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range s.ids {
		g.Go(func() error {
			data, err := s.repo.Get(gctx, id)
			if errors.Is(err, ErrNotFound) {
				s.logger.Debug().Str("bundle_id", id).Msg("bundle not present, skipping")
				return nil
			}
			if err != nil {
				return err
			}
			b, err := fhir.ParseBundle(data)
			if err != nil {
				s.logger.Warn().Err(err).Str("bundle_id", id).Msg("unreadable bundle, skipping")
				return nil
			}
			found[i] = &Info{
				ID:             id,
				Name:           DisplayName(id),
				Classification: workflow.Classify(b),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Info, 0, len(found))
	for _, info := range found {
		if info != nil {
			out = append(out, *info)
		}
	}
	return out, nil
}

// GetBundle loads and interprets a single bundle.
func (s *Service) GetBundle(ctx context.Context, id string) (*View, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildView(id, b), nil
}

// Raw returns the bundle bytes as the source holds them.
func (s *Service) Raw(ctx context.Context, id string) ([]byte, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) load(ctx context.Context, id string) (*fhir.Bundle, error) {
	data, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := fhir.ParseBundle(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBundle, id, err)
	}
	return b, nil
}
