package crawler

import (
	"strings"

	"sjsage522/licitacaoworker/helpers"
)

// ExtractDetail reads a detail page. Every lookup is independent: a missing
// element only leaves its own field unfound.
func ExtractDetail(doc Node, pageURL string, sel Selectors) DetailRecord {
	detail := DetailRecord{ID: ResolveID(pageURL)}

	readDetailTable(doc, sel, &detail)
	detail.AdministrativeUnit = findAdministrativeUnit(doc, sel)
	detail.DocumentLink = findDocumentLink(doc, sel)
	detail.Description = findDescription(doc, sel)

	return detail
}

// readDetailTable walks the (header, value) rows of the detail table.
// Headers match by case-sensitive substring; the first matching label of a
// row wins and unknown headers are ignored.
func readDetailTable(doc Node, sel Selectors, detail *DetailRecord) {
	table := doc.Find(sel.DetailTable)
	if !table.Exists() {
		return
	}

	for _, row := range table.FindAll(sel.DetailRow) {
		cells := row.FindAll(sel.DetailCell)
		if len(cells) != 2 {
			continue
		}
		header, value := cells[0].Text(), cells[1].Text()

		switch {
		case strings.Contains(header, sel.EstimatedLabel):
			detail.EstimatedValue = ParseMonetaryValue(value)
		case strings.Contains(header, sel.StatusLabel):
			detail.Status = Found(value)
		case strings.Contains(header, sel.OpeningLabel):
			detail.OpeningDate = Found(value)
		case strings.Contains(header, sel.ModalityLabel):
			detail.Modality = Found(value)
		}
	}
}

func findAdministrativeUnit(doc Node, sel Selectors) Field {
	label := strings.ToLower(sel.UnitLabel)
	for _, cell := range doc.FindAll(sel.DetailCell) {
		// Layout cells wrapping the detail table carry the label only
		// through a nested cell
		if cell.Find(sel.DetailCell).Exists() {
			continue
		}
		if !strings.Contains(strings.ToLower(cell.Text()), label) {
			continue
		}
		value := cell.FindNext(sel.DetailCell)
		if !value.Exists() {
			return Field{}
		}
		return Found(value.Text())
	}
	return Field{}
}

func findDocumentLink(doc Node, sel Selectors) Field {
	link := doc.Find(sel.DownloadIcon).Closest(sel.DownloadLink)
	if href, ok := link.Attr("href"); ok {
		return Found(strings.TrimSpace(href))
	}
	return Field{}
}

func findDescription(doc Node, sel Selectors) Field {
	for _, heading := range doc.FindAll(sel.ObjectHeading) {
		if heading.Text() != sel.ObjectLabel {
			continue
		}
		body := heading.FindNext(sel.ObjectBody)
		if !body.Exists() {
			return Field{}
		}
		return Found(helpers.CollapseSpace(body.Text()))
	}
	return Field{}
}
