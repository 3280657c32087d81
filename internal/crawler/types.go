package crawler

import "context"

// NotFound is the display value of a field that could not be extracted
const NotFound = "Não encontrado"

// Field is an extracted value that may be absent
type Field struct {
	Value string
	Found bool
}

// Found wraps an extracted value
func Found(v string) Field {
	return Field{Value: v, Found: true}
}

// Or returns the value, or fallback when the field was not found
func (f Field) Or(fallback string) string {
	if !f.Found {
		return fallback
	}
	return f.Value
}

// String renders the field with the NotFound sentinel
func (f Field) String() string {
	return f.Or(NotFound)
}

// ListingStub is one entry of a listing page
type ListingStub struct {
	PublishedAt Field
	Title       Field
	Link        Field
}

// DetailRecord holds the fields read from a detail page
type DetailRecord struct {
	ID                 Field
	AdministrativeUnit Field
	Modality           Field
	EstimatedValue     Field
	Status             Field
	OpeningDate        Field
	DocumentLink       Field
	Description        Field
}

// Record is a listing stub merged with its detail page. Records are
// values; the controller never changes one after appending it.
type Record struct {
	ID                 Field
	PublishedAt        Field
	Title              Field
	Link               Field
	AdministrativeUnit Field
	Modality           Field
	EstimatedValue     Field
	Status             Field
	OpeningDate        Field
	DocumentLink       Field
	Description        Field
}

// NewRecord merges a stub and its detail record
func NewRecord(stub ListingStub, detail DetailRecord) Record {
	return Record{
		ID:                 detail.ID,
		PublishedAt:        stub.PublishedAt,
		Title:              stub.Title,
		Link:               stub.Link,
		AdministrativeUnit: detail.AdministrativeUnit,
		Modality:           detail.Modality,
		EstimatedValue:     detail.EstimatedValue,
		Status:             detail.Status,
		OpeningDate:        detail.OpeningDate,
		DocumentLink:       detail.DocumentLink,
		Description:        detail.Description,
	}
}

// Fetcher retrieves a page and parses it into a queryable document
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Node, error)
}

// Termination tells why a crawl stopped
type Termination string

const (
	// TerminationExhausted means a listing page had no (or an empty) listing container
	TerminationExhausted Termination = "exhausted"
	// TerminationFetchFailed means a listing page could not be fetched
	TerminationFetchFailed Termination = "fetch_failed"
	// TerminationPaginationUnrecognized means the page URL has no page number to advance
	TerminationPaginationUnrecognized Termination = "pagination_unrecognized"
	// TerminationDateReached means the oldest entry of a page is not in the past
	TerminationDateReached Termination = "date_reached"
)

// Result is the outcome of one crawl
type Result struct {
	Records []Record
	Reason  Termination
	Pages   int
}

// Selectors contains CSS selectors and labels for the portal markup
type Selectors struct {
	// Listing page
	ListingContainer string `yaml:"listing_container"`
	ListingBlock     string `yaml:"listing_block"`
	PublishedAt      string `yaml:"published_at"`
	Title            string `yaml:"title"`
	Link             string `yaml:"link"`

	// Detail page
	DetailTable    string `yaml:"detail_table"`
	DetailRow      string `yaml:"detail_row"`
	DetailCell     string `yaml:"detail_cell"`
	UnitLabel      string `yaml:"unit_label"`
	DownloadIcon   string `yaml:"download_icon"`
	DownloadLink   string `yaml:"download_link"`
	ObjectHeading  string `yaml:"object_heading"`
	ObjectLabel    string `yaml:"object_label"`
	ObjectBody     string `yaml:"object_body"`
	EstimatedLabel string `yaml:"estimated_label"`
	StatusLabel    string `yaml:"status_label"`
	OpeningLabel   string `yaml:"opening_label"`
	ModalityLabel  string `yaml:"modality_label"`
}

// DefaultSelectors returns the selectors for the SUPEL portal
func DefaultSelectors() Selectors {
	return Selectors{
		ListingContainer: "div.lista-template-licitacao",
		ListingBlock:     "div.span12",
		PublishedAt:      "small.muted",
		Title:            "span.title",
		Link:             "span.title a",

		DetailTable:    "table.table-condensed",
		DetailRow:      "tr",
		DetailCell:     "td",
		UnitLabel:      "Unidade Administrativa",
		DownloadIcon:   "i.icon-download",
		DownloadLink:   "a",
		ObjectHeading:  "h4.bolder",
		ObjectLabel:    "Objeto",
		ObjectBody:     "div",
		EstimatedLabel: "Valor Estimado",
		StatusLabel:    "Situação",
		OpeningLabel:   "Data da Abertura",
		ModalityLabel:  "Modalidade",
	}
}
