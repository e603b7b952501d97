package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/resviz/internal/logging"
)

// Source is the remote data the dashboard reads from.
type Source interface {
	// Resources returns the resource type names offered by the filter.
	Resources(ctx context.Context) ([]string, error)
	// Raw returns every record, unfiltered.
	Raw(ctx context.Context) ([]Record, error)
	// ByResource returns the records of a single resource type.
	ByResource(ctx context.Context, resourceType string) ([]Record, error)
}

// Loader coordinates fetches against a Source.
type Loader struct {
	source Source
}

// NewLoader creates a Loader reading from source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// LoadSnapshot fetches the resource list and the raw records concurrently.
// Either failure cancels the other request and is returned.
func (l *Loader) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	log := logging.FromContext(ctx)

	var snap Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resources, err := l.source.Resources(gCtx)
		if err != nil {
			return fmt.Errorf("loading resources: %w", err)
		}
		snap.Resources = resources
		return nil
	})

	g.Go(func() error {
		records, err := l.source.Raw(gCtx)
		if err != nil {
			return fmt.Errorf("loading raw records: %w", err)
		}
		snap.Records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("snapshot load failed")
		return nil, err
	}

	log.Debug().Ctx(ctx).
		Int("resources", len(snap.Resources)).
		Int("records", len(snap.Records)).
		Msg("snapshot loaded")

	return &snap, nil
}

// LoadRecords fetches the records for resourceType. An empty resourceType means
// no filter and returns the raw records.
func (l *Loader) LoadRecords(ctx context.Context, resourceType string) ([]Record, error) {
	log := logging.FromContext(ctx)

	var (
		records []Record
		err     error
	)
	if resourceType == "" {
		records, err = l.source.Raw(ctx)
	} else {
		records, err = l.source.ByResource(ctx, resourceType)
	}
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("resource_type", resourceType).Msg("record load failed")
		return nil, fmt.Errorf("loading records for %q: %w", resourceType, err)
	}

	log.Debug().Ctx(ctx).
		Str("resource_type", resourceType).
		Int("records", len(records)).
		Msg("records loaded")

	return records, nil
}

// LoadResources fetches the resource type names.
func (l *Loader) LoadResources(ctx context.Context) ([]string, error) {
	resources, err := l.source.Resources(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Ctx(ctx).Err(err).Msg("resource load failed")
		return nil, fmt.Errorf("loading resources: %w", err)
	}
	return resources, nil
}
