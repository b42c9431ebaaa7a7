package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"BulletinScanner/internal/domain"
)

const parserVersion = "v1"

// Heading lookahead when pairing a table with its title.
const titleLookahead = 10

var chartTitleMarkers = []string{"final action", "dates for filing", "visa availability"}

// ExtractCharts locates candidate data tables on one page and assembles them
// into typed charts. Headings are consumed from a single cursor shared across
// all tables so each title is claimed at most once; a table with no matching
// heading within the lookahead window still gets a synthetic title rather
// than being dropped.
func ExtractCharts(doc *goquery.Document) []domain.Chart {
	headings := headingTexts(doc)
	cursor := 0

	var charts []domain.Chart
	doc.Find("table").Each(func(index int, table *goquery.Selection) {
		grid := tableGrid(table)
		// Need a header row plus at least 2 data rows and 2 columns to be a
		// real chart.
		if len(grid) < 3 || len(grid[0]) < 2 {
			return
		}

		var title string
		title, cursor = claimTitle(headings, cursor, index)
		charts = append(charts, buildChart(title, grid))
	})

	return charts
}

func headingTexts(doc *goquery.Document) []string {
	var texts []string
	doc.Find("h2, h3, h4").Each(func(_ int, h *goquery.Selection) {
		texts = append(texts, collapseText(h.Text()))
	})
	return texts
}

// claimTitle draws up to titleLookahead headings from the shared cursor and
// returns the first one that reads like a chart title, along with the new
// cursor position. Headings drawn but not matched stay consumed.
func claimTitle(headings []string, cursor, tableIndex int) (string, int) {
	for drawn := 0; drawn < titleLookahead && cursor < len(headings); drawn++ {
		candidate := headings[cursor]
		cursor++

		lower := strings.ToLower(candidate)
		for _, marker := range chartTitleMarkers {
			if strings.Contains(lower, marker) {
				return candidate, cursor
			}
		}
	}
	return fmt.Sprintf("Table %d", tableIndex), cursor
}

func classifySystem(title string) domain.System {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "family"):
		return domain.SystemFamily
	case strings.Contains(lower, "employment"):
		return domain.SystemEmployment
	default:
		return domain.SystemOther
	}
}

func classifyChartType(title string) domain.ChartType {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "final action"):
		return domain.ChartFinalActionDates
	case strings.Contains(lower, "dates for filing"):
		return domain.ChartDatesForFiling
	default:
		return domain.ChartTypeUnknown
	}
}

// buildChart turns a text grid into a chart. The first grid row is the
// header; its first cell labels the category column and the rest become
// chargeability-area columns. Remaining rows supply row labels and cell
// values. Value parsing is total, so no cell can abort construction.
func buildChart(title string, grid [][]string) domain.Chart {
	header := grid[0]

	columns := make([]domain.Column, 0, len(header)-1)
	for _, label := range header[1:] {
		columns = append(columns, domain.Column{
			ColID:   CanonicalColumnID(label),
			Label:   label,
			Aliases: []string{},
		})
	}

	rows := make([]domain.Row, 0, len(grid)-1)
	cells := make([]domain.Cell, 0, (len(grid)-1)*len(columns))
	for _, line := range grid[1:] {
		label := line[0]
		rowID := Slug(label)
		rows = append(rows, domain.Row{RowID: rowID, Label: label})

		for j, column := range columns {
			raw := ""
			if j+1 < len(line) {
				raw = line[j+1]
			}

			var rawText *string
			if raw != "" {
				rawText = &raw
			}
			cells = append(cells, domain.Cell{
				RowID:   rowID,
				ColID:   column.ColID,
				Value:   ParseValue(raw),
				RawText: rawText,
			})
		}
	}

	return domain.Chart{
		System:     classifySystem(title),
		ChartType:  classifyChartType(title),
		Title:      title,
		SchemaHint: domain.SchemaHint{ParserVersion: parserVersion},
		Columns:    columns,
		Rows:       rows,
		Cells:      cells,
	}
}

// tableGrid flattens a <table> into rows of normalized cell text, treating
// <th> and <td> alike. Rows and cells belonging to a nested table are left
// for that table's own pass; Find alone would flatten them into this grid.
func tableGrid(table *goquery.Selection) [][]string {
	var grid [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !ownedBy(tr.Closest("table"), table) {
			return
		}

		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			if !ownedBy(cell.Closest("tr"), tr) {
				return
			}
			row = append(row, collapseText(cell.Text()))
		})
		if len(row) > 0 {
			grid = append(grid, row)
		}
	})
	return grid
}

func ownedBy(ancestor, owner *goquery.Selection) bool {
	return len(ancestor.Nodes) > 0 && len(owner.Nodes) > 0 && ancestor.Nodes[0] == owner.Nodes[0]
}

// collapseText trims and folds all internal whitespace runs to single
// spaces, the same normalization applied to every piece of page text.
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
