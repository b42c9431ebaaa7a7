package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BulletinScanner/internal/domain"
)

func openTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()

	archive, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func testBulletin(id, digest, extractedAt string) domain.Bulletin {
	return domain.Bulletin{
		ID:         id,
		Sources:    domain.Sources{HTMLURL: "https://travel.state.gov/" + id + ".html"},
		Charts:     []domain.Chart{},
		TextBlocks: []domain.TextBlock{},
		Anomalies:  []domain.Anomaly{},
		Raw:        domain.Raw{HTMLSHA256: digest, ExtractedAt: extractedAt},
	}
}

func TestLatestDigestUnseenBulletin(t *testing.T) {
	t.Parallel()

	archive := openTestArchive(t)

	digest, err := archive.LatestDigest(context.Background(), "2025-09")
	require.NoError(t, err)
	assert.Empty(t, digest)
}

// Each extraction run appends a record; the latest digest follows the most
// recent extraction timestamp.
func TestSaveBulletinAppendsRuns(t *testing.T) {
	t.Parallel()

	archive := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.SaveBulletin(ctx, testBulletin("2025-09", "aaa", "2025-09-10T06:00:00Z")))
	require.NoError(t, archive.SaveBulletin(ctx, testBulletin("2025-09", "bbb", "2025-09-11T06:00:00Z")))
	require.NoError(t, archive.SaveBulletin(ctx, testBulletin("2025-08", "ccc", "2025-09-11T06:00:00Z")))

	digest, err := archive.LatestDigest(ctx, "2025-09")
	require.NoError(t, err)
	assert.Equal(t, "bbb", digest)

	digest, err = archive.LatestDigest(ctx, "2025-08")
	require.NoError(t, err)
	assert.Equal(t, "ccc", digest)
}
