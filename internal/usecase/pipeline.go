package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"BulletinScanner/internal/domain"
	"BulletinScanner/internal/infrastructure/parser"
	"BulletinScanner/internal/ports"
)

const (
	schemaVersion = "1.0.0"
	datasetNotes  = "Extracted from DOS Visa Bulletin HTML pages"
)

// PipelineDeps wires the driven adapters and run settings into the pipeline.
type PipelineDeps struct {
	Fetcher    ports.PageFetcher
	Archive    ports.BulletinArchive
	Logger     *slog.Logger
	SourceName string
	BaseURL    string
	IndexURL   string
	OutputPath string
	// Clock defaults to time.Now; injectable for tests.
	Clock func() time.Time
}

// Pipeline discovers bulletin pages, extracts each one, and writes the
// dataset document. Pages are processed strictly in order, one at a time.
type Pipeline struct {
	fetcher    ports.PageFetcher
	archive    ports.BulletinArchive
	logger     *slog.Logger
	sourceName string
	baseURL    string
	indexURL   string
	outputPath string
	clock      func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:    deps.Fetcher,
		archive:    deps.Archive,
		logger:     logger,
		sourceName: deps.SourceName,
		baseURL:    deps.BaseURL,
		indexURL:   deps.IndexURL,
		outputPath: deps.OutputPath,
		clock:      clock,
	}
}

// Run performs one full discovery + extraction pass and writes the output
// document. It returns the number of bulletins extracted. Failure to reach
// the index or to write the output is fatal; everything else is contained
// per page.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	markup, err := p.fetcher.FetchPage(ctx, p.indexURL)
	if err != nil {
		return 0, fmt.Errorf("fetch index: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return 0, fmt.Errorf("parse index: %w", err)
	}

	locations := parser.DiscoverBulletinLinks(doc, p.baseURL)
	p.logger.Info("discovered bulletin pages", "count", len(locations))

	dataset := p.BuildDataset(ctx, locations)

	if err := p.writeDataset(dataset); err != nil {
		return 0, err
	}
	return len(dataset.Bulletins), nil
}

// BuildDataset extracts every location it can and wraps the survivors in the
// dataset envelope. A failing page is logged and skipped; dataset order
// equals input order minus failed pages.
func (p *Pipeline) BuildDataset(ctx context.Context, locations []string) domain.Dataset {
	bulletins := make([]domain.Bulletin, 0, len(locations))
	for _, location := range locations {
		bulletin, err := p.extractOne(ctx, location)
		if err != nil {
			p.logger.Error("skip bulletin page", "url", location, "error", err)
			continue
		}

		p.archiveBulletin(ctx, bulletin)
		bulletins = append(bulletins, bulletin)
	}

	return domain.Dataset{
		Info: domain.DatasetInfo{
			Source:        p.sourceName,
			GeneratedAt:   p.clock().UTC().Format(time.RFC3339),
			SchemaVersion: schemaVersion,
			Notes:         datasetNotes,
		},
		Bulletins: bulletins,
	}
}

// extractOne fetches and parses a single page. A panic in a leaf parser on
// malformed markup is converted into a per-page error so the run survives.
func (p *Pipeline) extractOne(ctx context.Context, location string) (bulletin domain.Bulletin, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract %s: panic: %v", location, r)
		}
	}()

	markup, err := p.fetcher.FetchPage(ctx, location)
	if err != nil {
		return domain.Bulletin{}, fmt.Errorf("fetch %s: %w", location, err)
	}

	return parser.ExtractBulletin(location, markup, p.baseURL, p.clock())
}

// archiveBulletin is best-effort: archive problems are logged, never fatal.
func (p *Pipeline) archiveBulletin(ctx context.Context, bulletin domain.Bulletin) {
	if p.archive == nil {
		return
	}

	prior, err := p.archive.LatestDigest(ctx, bulletin.ID)
	switch {
	case err != nil:
		p.logger.Warn("archive lookup failed", "id", bulletin.ID, "error", err)
	case prior != "" && prior != bulletin.Raw.HTMLSHA256:
		p.logger.Info("bulletin content changed since last run", "id", bulletin.ID)
	}

	if err := p.archive.SaveBulletin(ctx, bulletin); err != nil {
		p.logger.Warn("archive save failed", "id", bulletin.ID, "error", err)
	}
}

func (p *Pipeline) writeDataset(dataset domain.Dataset) error {
	payload, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(p.outputPath, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.outputPath, err)
	}
	return nil
}
