package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/unidoc/unipdf/v3/creator"
)

// RenderPDFReport builds the PDF variant of the report. Layout mirrors the
// HTML document: header, crisis count, pain-point table, pain series with
// summary statistics.
func RenderPDFReport(summary *ReportSummary, opts RenderOptions) ([]byte, error) {
	if summary == nil {
		return nil, NewInvalidError("summary required")
	}
	labels := labelsFor(opts.Locale)
	period := opts.PeriodsText
	if period == "" {
		period = summary.WindowStart + " — " + summary.WindowEnd
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}

	c := creator.New()
	c.SetPageMargins(50, 50, 50, 50)

	title := c.NewParagraph(labels.Title)
	title.SetFontSize(20)
	title.SetColor(creator.ColorRGBFrom8bit(0x5a, 0x2a, 0x82))
	title.SetMargins(0, 0, 0, 6)
	if err := c.Draw(title); err != nil {
		return nil, err
	}

	meta := c.NewParagraph(fmt.Sprintf("%s · %s · %s %s",
		summary.UserEmail, period, labels.Generated, generated.Format("2006-01-02 15:04 UTC")))
	meta.SetFontSize(9)
	meta.SetColor(creator.ColorRGBFrom8bit(0x66, 0x66, 0x66))
	meta.SetMargins(0, 0, 0, 14)
	if err := c.Draw(meta); err != nil {
		return nil, err
	}

	if err := drawSection(c, labels.Crisis); err != nil {
		return nil, err
	}
	crisisText := fmt.Sprintf("%d", summary.Crisis.Count)
	if summary.Crisis.State == StateError {
		crisisText = labels.FetchError
	}
	crisis := c.NewParagraph(crisisText)
	crisis.SetFontSize(16)
	crisis.SetMargins(0, 0, 0, 12)
	if err := c.Draw(crisis); err != nil {
		return nil, err
	}

	if err := drawSection(c, labels.PainPoints); err != nil {
		return nil, err
	}
	switch summary.PainPoints.State {
	case StateOK:
		rows := make([][2]string, 0, len(summary.PainPoints.Points))
		for _, p := range summary.PainPoints.Points {
			rows = append(rows, [2]string{p.Location, fmt.Sprintf("%d", p.Count)})
		}
		if err := drawTable(c, labels.Location, labels.Occurrences, rows); err != nil {
			return nil, err
		}
	case StateError:
		if err := drawNote(c, labels.FetchError); err != nil {
			return nil, err
		}
	default:
		if err := drawNote(c, labels.NoData); err != nil {
			return nil, err
		}
	}

	if err := drawSection(c, labels.PainSeries); err != nil {
		return nil, err
	}
	switch summary.PainSeries.State {
	case StateOK:
		stats := c.NewParagraph(fmt.Sprintf("%s: %.1f · %s: %d · %s: %d",
			labels.Mean, summary.PainSeries.Series.Mean,
			labels.Min, summary.PainSeries.Series.Min,
			labels.Max, summary.PainSeries.Series.Max))
		stats.SetFontSize(10)
		stats.SetMargins(0, 0, 0, 6)
		if err := c.Draw(stats); err != nil {
			return nil, err
		}
		rows := make([][2]string, 0, len(summary.PainSeries.Series.Points))
		for _, p := range summary.PainSeries.Series.Points {
			rows = append(rows, [2]string{p.Date, fmt.Sprintf("%d", p.Intensity)})
		}
		if err := drawTable(c, labels.Date, labels.Intensity, rows); err != nil {
			return nil, err
		}
	case StateError:
		if err := drawNote(c, labels.FetchError); err != nil {
			return nil, err
		}
	default:
		if err := drawNote(c, labels.NoData); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := c.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawSection(c *creator.Creator, text string) error {
	p := c.NewParagraph(text)
	p.SetFontSize(13)
	p.SetColor(creator.ColorRGBFrom8bit(0x5a, 0x2a, 0x82))
	p.SetMargins(0, 0, 10, 4)
	return c.Draw(p)
}

func drawNote(c *creator.Creator, text string) error {
	p := c.NewParagraph(text)
	p.SetFontSize(10)
	p.SetColor(creator.ColorRGBFrom8bit(0x88, 0x88, 0x88))
	p.SetMargins(0, 0, 0, 12)
	return c.Draw(p)
}

func drawTable(c *creator.Creator, leftHeader, rightHeader string, rows [][2]string) error {
	table := c.NewTable(2)
	table.SetMargins(0, 0, 0, 12)
	addCell := func(text string, bold bool) {
		p := c.NewParagraph(text)
		p.SetFontSize(10)
		if bold {
			p.SetColor(creator.ColorRGBFrom8bit(0x5a, 0x2a, 0x82))
		}
		cell := table.NewCell()
		cell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 0.5)
		cell.SetIndent(2)
		_ = cell.SetContent(p)
	}
	addCell(leftHeader, true)
	addCell(rightHeader, true)
	for _, r := range rows {
		addCell(r[0], false)
		addCell(r[1], false)
	}
	return c.Draw(table)
}
