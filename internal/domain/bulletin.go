package domain

// System identifies the preference-category family a chart belongs to.
type System string

const (
	SystemFamily     System = "FAMILY"
	SystemEmployment System = "EMPLOYMENT"
	SystemOther      System = "OTHER"
)

// ChartType distinguishes the two published chart kinds.
type ChartType string

const (
	ChartFinalActionDates ChartType = "FINAL_ACTION_DATES"
	ChartDatesForFiling   ChartType = "DATES_FOR_FILING"
	ChartTypeUnknown      ChartType = "UNKNOWN"
)

// ValueKind tags the variant carried by a Value.
type ValueKind string

const (
	KindStatus ValueKind = "STATUS"
	KindDate   ValueKind = "DATE"
)

// StatusCode enumerates the non-date cell markers.
type StatusCode string

const (
	StatusCurrent     StatusCode = "C"
	StatusUnavailable StatusCode = "U"
	StatusUnknown     StatusCode = "UNKNOWN"
	StatusNA          StatusCode = "NA"
)

// Value is a tagged variant: a status marker or a parsed date, never both.
// Date values keep the cell text exactly as written for audit.
type Value struct {
	Kind     ValueKind  `json:"kind"`
	Status   StatusCode `json:"status,omitempty"`
	Date     string     `json:"date,omitempty"`
	AsOfText string     `json:"asOfText,omitempty"`
}

// Column is one chargeability-area column of a chart.
type Column struct {
	ColID   string   `json:"colId"`
	Label   string   `json:"label"`
	Aliases []string `json:"aliases"`
}

// Row is one preference-category row of a chart. Group, preference code and
// notes need domain knowledge this pipeline does not have; they stay null.
type Row struct {
	RowID          string  `json:"rowId"`
	Label          string  `json:"label"`
	Group          *string `json:"group"`
	PreferenceCode *string `json:"preferenceCode"`
	Notes          *string `json:"notes"`
}

// Cell holds the typed value at one (row, column) intersection. Cells are
// sparse; a missing cell means "not extracted", not "not applicable".
type Cell struct {
	RowID     string  `json:"rowId"`
	ColID     string  `json:"colId"`
	Value     Value   `json:"value"`
	RawText   *string `json:"rawText"`
	SourceRef *string `json:"sourceRef"`
}

// SchemaHint records which parser revision produced a chart.
type SchemaHint struct {
	TableKey      *string `json:"tableKey"`
	ParserVersion string  `json:"parserVersion"`
}

// Chart is one data table extracted from a bulletin page.
type Chart struct {
	System     System     `json:"system"`
	ChartType  ChartType  `json:"chartType"`
	Title      string     `json:"title"`
	SchemaHint SchemaHint `json:"schemaHint"`
	Columns    []Column   `json:"columns"`
	Rows       []Row      `json:"rows"`
	Cells      []Cell     `json:"cells"`
	Notes      *string    `json:"notes"`
}

// TextBlock is one narrative paragraph with keyword tags.
type TextBlock struct {
	BlockID  string   `json:"blockId"`
	Type     string   `json:"type"`
	Heading  *string  `json:"heading"`
	Text     string   `json:"text"`
	Tags     []string `json:"tags"`
	Mentions []string `json:"mentions"`
}

// Anomaly is reserved for rule-based consistency checks; the extraction
// pipeline itself never populates it.
type Anomaly struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Publication carries the bulletin's issue metadata; fields the page does
// not state remain null.
type Publication struct {
	Month       *int    `json:"month"`
	Year        *int    `json:"year"`
	Volume      *int    `json:"volume"`
	Number      *int    `json:"number"`
	IssueDate   *string `json:"issueDate"`
	RevisedDate *string `json:"revisedDate"`
}

// Sources lists where the bulletin content came from.
type Sources struct {
	HTMLURL            string  `json:"htmlUrl"`
	PDFURL             *string `json:"pdfUrl"`
	PrinterFriendlyURL *string `json:"printerFriendlyUrl"`
}

// Revision captures signals that a bulletin replaces an earlier issue.
type Revision struct {
	IsRevised    bool    `json:"isRevised"`
	Supersedes   *string `json:"supersedes"`
	SupersededBy *string `json:"supersededBy"`
	RevisionNote *string `json:"revisionNote"`
}

// Raw is the extraction provenance record.
type Raw struct {
	HTMLSHA256  string `json:"htmlSha256"`
	ExtractedAt string `json:"extractedAt"`
}

// Bulletin is one monthly publication, built once per page visit and never
// merged with or mutated into another bulletin.
type Bulletin struct {
	ID          string      `json:"id"`
	Publication Publication `json:"publication"`
	Sources     Sources     `json:"sources"`
	Revision    Revision    `json:"revision"`
	Charts      []Chart     `json:"charts"`
	TextBlocks  []TextBlock `json:"textBlocks"`
	Anomalies   []Anomaly   `json:"anomalies"`
	Raw         Raw         `json:"raw"`
}

// DatasetInfo is the envelope metadata of one extraction run.
type DatasetInfo struct {
	Source        string `json:"source"`
	GeneratedAt   string `json:"generatedAt"`
	SchemaVersion string `json:"schemaVersion"`
	Notes         string `json:"notes"`
}

// Dataset is the top-level output document: envelope plus bulletins in
// extraction order.
type Dataset struct {
	Info      DatasetInfo `json:"dataset"`
	Bulletins []Bulletin  `json:"bulletins"`
}
