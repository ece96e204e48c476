package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/poku-e/tackleindex/internal/catalog"
	"github.com/poku-e/tackleindex/internal/table"
)

func sample() []Record {
	c := catalog.ParseLines([]string{"シリーズＢ　商品１", "シリーズＡ　商品２", "シリーズＡ　商品１"}).
		Sorted(catalog.JapaneseCollation())
	return Records(c, table.SearchLink("https://example.com/?q="))
}

func TestRecords(t *testing.T) {
	recs := sample()

	require.Len(t, recs, 3)
	assert.Equal(t, Record{Series: "シリーズＡ", Item: "シリーズA 商品1", Link: "https://example.com/?q=%E3%82%B7%E3%83%AA%E3%83%BC%E3%82%BAA%20%E5%95%86%E5%93%811"}, recs[0])
	assert.Equal(t, "シリーズA 商品2", recs[1].Item)
	assert.Equal(t, "シリーズＢ", recs[2].Series)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"series", "item", "link"}, rows[0])
	assert.Equal(t, "シリーズB 商品1", rows[3][1])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, WriteFile(path, "リール", sample()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("リール")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"series", "item", "link"}, rows[0])
	assert.Equal(t, "シリーズＡ", rows[1][0])
	assert.Equal(t, "シリーズA 商品2", rows[2][1])
}

func TestWriteFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.CSV")
	assert.NoError(t, WriteFile(path, "", sample()))
}

func TestWriteFileUnknownFormat(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "catalog.json"), "", sample())
	assert.ErrorIs(t, err, ErrFormat)
}
