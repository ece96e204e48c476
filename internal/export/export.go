// Package export writes a sorted catalog to CSV or XLSX, one row per item.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/poku-e/tackleindex/internal/catalog"
	"github.com/poku-e/tackleindex/internal/table"
)

// ErrFormat is returned for an output path that is neither .csv nor .xlsx.
var ErrFormat = errors.New("out must end with .csv or .xlsx")

var header = []string{"series", "item", "link"}

// Record is one exported row.
type Record struct {
	Series string
	Item   string
	Link   string
}

// Records flattens c in its series and item order.
func Records(c *catalog.Catalog, link table.LinkFunc) []Record {
	out := make([]Record, 0, c.Len())
	for _, series := range c.Series {
		for _, item := range c.Items[series] {
			r := Record{Series: series, Item: item}
			if link != nil {
				r.Link = link(item)
			}
			out = append(out, r)
		}
	}
	return out
}

// WriteFile picks the format from the extension of path.
func WriteFile(path, sheet string, records []Record) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, records); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return WriteXLSX(path, sheet, records)
	}
	return fmt.Errorf("%s: %w", path, ErrFormat)
}

// ---------- Output writers ----------

func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Series, r.Item, r.Link}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(path, sheet string, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}
	// StreamWriter for efficiency on large catalogs
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := sw.SetRow("A1", row); err != nil {
		return err
	}
	for i, r := range records {
		cellAddr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellAddr, []interface{}{r.Series, r.Item, r.Link}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
