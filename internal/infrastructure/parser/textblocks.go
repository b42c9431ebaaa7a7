package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"BulletinScanner/internal/domain"
)

// Stems rather than full words so morphological variants ("retrogression",
// "revised", "superseded") match too.
var keywordStems = []string{
	"retrogress", "oversub", "annual", "unavailable",
	"unauthorized", "uscis", "dhs", "supersed", "revis",
}

// ExtractTextBlocks pulls the narrative paragraphs from a page. Headings are
// part of the scan so block identifiers stay aligned with document order,
// but only paragraphs are emitted. Paragraphs that hit any keyword stem get
// the KEYWORDS tag plus the list of matched stems.
func ExtractTextBlocks(doc *goquery.Document) []domain.TextBlock {
	var blocks []domain.TextBlock
	doc.Find("h2, h3, h4, p").Each(func(index int, sel *goquery.Selection) {
		if goquery.NodeName(sel) != "p" {
			return
		}

		text := collapseText(sel.Text())
		if text == "" {
			return
		}

		lower := strings.ToLower(text)
		mentions := []string{}
		for _, stem := range keywordStems {
			if strings.Contains(lower, stem) {
				mentions = append(mentions, stem)
			}
		}

		tags := []string{}
		if len(mentions) > 0 {
			tags = append(tags, "KEYWORDS")
		}

		blocks = append(blocks, domain.TextBlock{
			BlockID:  fmt.Sprintf("b%d", index),
			Type:     "OTHER",
			Text:     text,
			Tags:     tags,
			Mentions: mentions,
		})
	})
	return blocks
}
