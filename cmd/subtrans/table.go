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

// columnSpec describes one table column. A positive WidthMax wraps longer
// cell text onto additional lines.
type columnSpec struct {
	Header   string
	Align    columnAlignment
	WidthMax int
}

func renderTable(columns []columnSpec, rows [][]string) string {
	count := len(columns)
	if count == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, count)
	for i, column := range columns {
		header[i] = column.Header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, count)
		for i := 0; i < count; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, count)
	for i, column := range columns {
		align := text.AlignLeft
		if column.Align == alignRight {
			align = text.AlignRight
		}
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
		if column.WidthMax > 0 {
			cfg.WidthMax = column.WidthMax
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		columnConfigs = append(columnConfigs, cfg)
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
