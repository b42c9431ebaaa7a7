package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"BulletinScanner/internal/domain"
)

// The bulletin writes dates as dd-mmm-yy with hyphens, single spaces, or no
// separator at all: "01JAN24", "1-Jan-24", "01 Jan 24".
var cellDateExpr = regexp.MustCompile(`^(\d{1,2})[-\s]?([A-Za-z]{3})[-\s]?(\d{2})$`)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ParseValue converts one raw chart cell into a typed value. The function is
// total: every input string maps to exactly one value, so a malformed cell
// can never abort chart construction. Unmatched non-empty text becomes
// STATUS UNKNOWN (a parsing gap); an empty cell becomes STATUS NA (absence).
func ParseValue(raw string) domain.Value {
	text := strings.TrimSpace(raw)

	switch text {
	case "C":
		return domain.Value{Kind: domain.KindStatus, Status: domain.StatusCurrent}
	case "U":
		return domain.Value{Kind: domain.KindStatus, Status: domain.StatusUnavailable}
	case "":
		return domain.Value{Kind: domain.KindStatus, Status: domain.StatusNA}
	}

	m := cellDateExpr.FindStringSubmatch(text)
	if m == nil {
		return domain.Value{Kind: domain.KindStatus, Status: domain.StatusUnknown}
	}

	month, ok := monthIndex[strings.ToLower(m[2])]
	if !ok {
		return domain.Value{Kind: domain.KindStatus, Status: domain.StatusUnknown}
	}

	day, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[3])
	// The source still prints 2-digit years; 00-79 land in the 2000s, the
	// rest in the 1900s, which is unambiguous for the bulletin's date range.
	year := 1900 + yy
	if yy <= 79 {
		year = 2000 + yy
	}

	return domain.Value{
		Kind:     domain.KindDate,
		Date:     fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		AsOfText: text,
	}
}
