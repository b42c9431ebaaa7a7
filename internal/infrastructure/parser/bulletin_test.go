package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulletinPage = `
<html><body>
<h1>Visa Bulletin For September 2025</h1>
<p>Number 45 Volume X</p>
<a href="/content/dam/visas/Bulletins/visabulletin_september2025.pdf">PDF version</a>
<h2>A. Final Action Dates for Family-Sponsored Preference Cases</h2>
<table>
  <tr><th>Family-Sponsored</th><th>All Chargeability Areas Except Those Listed</th><th>MEXICO</th></tr>
  <tr><td>F1</td><td>01-Jan-15</td><td>01-Apr-05</td></tr>
  <tr><td>F2A</td><td>C</td><td>C</td></tr>
</table>
<p>This bulletin supersedes the earlier version.</p>
</body></html>`

func TestExtractBulletin(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.September, 10, 12, 30, 0, 0, time.UTC)
	pageURL := "https://travel.state.gov/visa-bulletin-for-september-2025.html"

	b, err := ExtractBulletin(pageURL, bulletinPage, "https://travel.state.gov", now)
	require.NoError(t, err)

	assert.Equal(t, "2025-09", b.ID)
	require.NotNil(t, b.Publication.Month)
	require.NotNil(t, b.Publication.Year)
	assert.Equal(t, 9, *b.Publication.Month)
	assert.Equal(t, 2025, *b.Publication.Year)
	assert.Nil(t, b.Publication.Volume)

	assert.Equal(t, pageURL, b.Sources.HTMLURL)
	require.NotNil(t, b.Sources.PDFURL)
	assert.Equal(t, "https://travel.state.gov/content/dam/visas/Bulletins/visabulletin_september2025.pdf", *b.Sources.PDFURL)
	assert.Nil(t, b.Sources.PrinterFriendlyURL)

	assert.True(t, b.Revision.IsRevised)
	require.NotNil(t, b.Revision.RevisionNote)
	assert.Contains(t, *b.Revision.RevisionNote, "supersedes")

	require.Len(t, b.Charts, 1)
	assert.Len(t, b.TextBlocks, 2)
	assert.Empty(t, b.Anomalies)

	digest := sha256.Sum256([]byte(bulletinPage))
	assert.Equal(t, hex.EncodeToString(digest[:]), b.Raw.HTMLSHA256)
	assert.Equal(t, "2025-09-10T12:30:00Z", b.Raw.ExtractedAt)
}

func TestExtractBulletinWithoutMonthYear(t *testing.T) {
	t.Parallel()

	markup := `<html><body><h1>Adjustment of Status Notice</h1><p>General guidance.</p></body></html>`

	b, err := ExtractBulletin("https://example.org/notice.html", markup, "https://example.org", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "adjustment_of_status_notice", b.ID)
	assert.Nil(t, b.Publication.Month)
	assert.Nil(t, b.Publication.Year)
	assert.Nil(t, b.Sources.PDFURL)
	assert.False(t, b.Revision.IsRevised)
	assert.Nil(t, b.Revision.RevisionNote)
}

func TestExtractBulletinFallsBackToLocationTitle(t *testing.T) {
	t.Parallel()

	b, err := ExtractBulletin("https://example.org/blank.html", "<html><body></body></html>", "https://example.org", time.Now())
	require.NoError(t, err)

	// No h1 on the page: the location string becomes the title and the id
	// is its slug.
	assert.Equal(t, "https_example_org_blank_html", b.ID)
}

// "revised" alone is not a revision signal; it needs "visa bulletin" in the
// same page text, while "supersedes" is sufficient on its own.
func TestExtractBulletinRevisionHeuristic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		body      string
		isRevised bool
	}{
		{"revised alone", "<p>This page was revised recently.</p>", false},
		{"revised with visa bulletin", "<p>This Visa Bulletin was revised on July 2.</p>", true},
		{"supersedes alone", "<p>This notice supersedes prior guidance.</p>", true},
		{"neither", "<p>Nothing relevant.</p>", false},
	}

	for _, tc := range cases {
		markup := "<html><body><h1>Notice</h1>" + tc.body + "</body></html>"
		b, err := ExtractBulletin("https://example.org/x.html", markup, "https://example.org", time.Now())
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.isRevised, b.Revision.IsRevised, tc.name)
	}
}

func TestExtractBulletinAbbreviatedMonthLookup(t *testing.T) {
	t.Parallel()

	markup := `<html><body><h1>Visa Bulletin for Sep 2025</h1></body></html>`
	b, err := ExtractBulletin("https://example.org/x.html", markup, "https://example.org", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "2025-09", b.ID)
	require.NotNil(t, b.Publication.Month)
	assert.Equal(t, 9, *b.Publication.Month)
}

func TestExtractBulletinUnknownMonthKeepsYear(t *testing.T) {
	t.Parallel()

	markup := `<html><body><h1>Visa Bulletin for Smarch 2025</h1></body></html>`
	b, err := ExtractBulletin("https://example.org/x.html", markup, "https://example.org", time.Now())
	require.NoError(t, err)

	assert.Nil(t, b.Publication.Month)
	require.NotNil(t, b.Publication.Year)
	assert.Equal(t, 2025, *b.Publication.Year)
	// Without a month the id falls back to the slugged title.
	assert.True(t, strings.HasPrefix(b.ID, "visa_bulletin_for_smarch"), "id %q", b.ID)
}
