package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableView is one rounded table. A nil row renders as a separator; Footer
// is optional and is printed as given, without upper-casing.
type tableView struct {
	Title   string
	Headers []string
	Rows    [][]string
	Aligns  []columnAlignment
	Footer  []string
}

func (v tableView) render(p printer) string {
	columns := len(v.Headers)
	if columns == 0 {
		return ""
	}

	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault
	if p.colorize {
		style.Color.Header = text.Colors{text.Bold}
		style.Color.Footer = text.Colors{text.Bold}
	}

	tw := table.NewWriter()
	tw.SetStyle(style)
	if v.Title != "" {
		tw.SetTitle(v.Title)
	}
	tw.AppendHeader(padRow(v.Headers, columns))
	for _, row := range v.Rows {
		if row == nil {
			tw.AppendSeparator()
			continue
		}
		tw.AppendRow(padRow(row, columns))
	}
	if len(v.Footer) > 0 {
		tw.AppendFooter(padRow(v.Footer, columns))
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(v.Aligns) && v.Aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignFooter: align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// padRow converts cells to a table.Row of exactly n columns.
func padRow(cells []string, n int) table.Row {
	row := make(table.Row, n)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
