package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"sjsage522/licitacaoworker/internal/crawler"
	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
)

// Format selects how records are rendered
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// descriptionWidth is the display width of the description column in tables
const descriptionWidth = 60

// row is the rendered form of a Record. Field order here is the output key order.
type row struct {
	ID                 string `json:"Id" yaml:"Id"`
	PublishedAt        string `json:"Data da Publicação" yaml:"Data da Publicação"`
	Title              string `json:"Título" yaml:"Título"`
	Link               string `json:"Link" yaml:"Link"`
	AdministrativeUnit string `json:"Unidade Administrativa" yaml:"Unidade Administrativa"`
	Modality           string `json:"Modalidade" yaml:"Modalidade"`
	EstimatedValue     string `json:"Valor Estimado" yaml:"Valor Estimado"`
	Status             string `json:"Situação" yaml:"Situação"`
	OpeningDate        string `json:"Data da Abertura" yaml:"Data da Abertura"`
	DocumentLink       string `json:"Edital" yaml:"Edital"`
	Description        string `json:"Descrição Completa" yaml:"Descrição Completa"`
}

// toRow substitutes the NotFound sentinel for every unfound field
func toRow(r crawler.Record) row {
	return row{
		ID:                 r.ID.String(),
		PublishedAt:        r.PublishedAt.String(),
		Title:              r.Title.String(),
		Link:               r.Link.String(),
		AdministrativeUnit: r.AdministrativeUnit.String(),
		Modality:           r.Modality.String(),
		EstimatedValue:     r.EstimatedValue.String(),
		Status:             r.Status.String(),
		OpeningDate:        r.OpeningDate.String(),
		DocumentLink:       r.DocumentLink.String(),
		Description:        r.Description.String(),
	}
}

func toRows(records []crawler.Record) []row {
	rows := make([]row, 0, len(records))
	for _, r := range records {
		rows = append(rows, toRow(r))
	}
	return rows
}

// Write renders all records to w in the given format
func Write(w io.Writer, format Format, records []crawler.Record) error {
	var err error
	switch format {
	case FormatJSON, "":
		err = writeJSON(w, records)
	case FormatYAML:
		err = writeYAML(w, records)
	case FormatTable:
		writeTable(w, records)
	default:
		return crawlerrors.NewOutput(fmt.Sprintf("unknown output format %q", format), nil)
	}
	if err != nil {
		return crawlerrors.NewOutput("failed to write records", err)
	}
	return nil
}

// MarshalRecord renders a single record as compact JSON
func MarshalRecord(r crawler.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toRow(r)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeJSON(w io.Writer, records []crawler.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(toRows(records))
}

func writeYAML(w io.Writer, records []crawler.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toRows(records)); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, records []crawler.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Id", "Data da Publicação", "Modalidade", "Valor Estimado", "Situação", "Descrição Completa"})

	for _, r := range toRows(records) {
		t.AppendRow(table.Row{
			r.ID,
			r.PublishedAt,
			r.Modality,
			r.EstimatedValue,
			r.Status,
			runewidth.Truncate(r.Description, descriptionWidth, "…"),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "Total", len(records)})
	t.Render()
}
