package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"BulletinScanner/internal/domain"
)

var titleMonthExpr = regexp.MustCompile(`(?i)for\s+([A-Za-z]+)\s+(\d{4})`)

const supersedesNote = "Contains 'supersedes' language (possible revised bulletin)."

// ExtractBulletin parses one bulletin page into its structured record:
// identity from the page title, the charts and text blocks, revision
// signals, the linked PDF if any, and raw provenance. Relative links are
// resolved against baseURL; now stamps the provenance record.
func ExtractBulletin(pageURL, markup, baseURL string, now time.Time) (domain.Bulletin, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return domain.Bulletin{}, fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	title := collapseText(doc.Find("h1").First().Text())
	if title == "" {
		title = pageURL
	}

	month, year := publicationMonthYear(title)

	id := Slug(title)
	if month != nil && year != nil {
		id = fmt.Sprintf("%04d-%02d", *year, *month)
	}

	fullText := strings.ToLower(collapseText(doc.Text()))
	mentionsSupersedes := strings.Contains(fullText, "supersedes")
	isRevised := mentionsSupersedes ||
		(strings.Contains(fullText, "revised") && strings.Contains(fullText, "visa bulletin"))

	var revisionNote *string
	if mentionsSupersedes {
		note := supersedesNote
		revisionNote = &note
	}

	var pdfURL *string
	if href, ok := doc.Find(`a[href$=".pdf"]`).First().Attr("href"); ok {
		if resolved, rErr := resolveURL(baseURL, href); rErr == nil {
			pdfURL = &resolved
		}
	}

	charts := ExtractCharts(doc)
	if charts == nil {
		charts = []domain.Chart{}
	}
	blocks := ExtractTextBlocks(doc)
	if blocks == nil {
		blocks = []domain.TextBlock{}
	}

	digest := sha256.Sum256([]byte(markup))

	return domain.Bulletin{
		ID:          id,
		Publication: domain.Publication{Month: month, Year: year},
		Sources:     domain.Sources{HTMLURL: pageURL, PDFURL: pdfURL},
		Revision:    domain.Revision{IsRevised: isRevised, RevisionNote: revisionNote},
		Charts:      charts,
		TextBlocks:  blocks,
		Anomalies:   []domain.Anomaly{},
		Raw: domain.Raw{
			HTMLSHA256:  hex.EncodeToString(digest[:]),
			ExtractedAt: now.UTC().Format(time.RFC3339),
		},
	}, nil
}

// publicationMonthYear reads "for <Month> <Year>" out of the page title. The
// month name is looked up by its first three letters; a year can be present
// with an unrecognized month, in which case only the year is kept.
func publicationMonthYear(title string) (*int, *int) {
	m := titleMonthExpr.FindStringSubmatch(title)
	if m == nil {
		return nil, nil
	}

	y, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, nil
	}
	year := &y

	name := strings.ToLower(m[1])
	if len(name) > 3 {
		name = name[:3]
	}
	if mo, ok := monthIndex[name]; ok {
		return &mo, year
	}
	return nil, year
}
