package ports

import (
	"context"

	"BulletinScanner/internal/domain"
)

// PageFetcher retrieves raw page markup for a URL. Any failure is a
// single-page failure; the pipeline decides whether to continue.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// BulletinArchive keeps every extraction as a new record; reprocessing a
// page appends, it never rewrites a prior record.
type BulletinArchive interface {
	SaveBulletin(ctx context.Context, bulletin domain.Bulletin) error
	// LatestDigest returns the content hash of the most recent archived
	// extraction for a bulletin id, or "" when the id has never been seen.
	LatestDigest(ctx context.Context, id string) (string, error)
}
