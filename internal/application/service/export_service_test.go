package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() dataset {
	return dataset{
		name:    "products",
		headers: []string{"barcode", "name", "price"},
		rows: [][]string{
			{"779123", "Yerba Mate 1kg", "4500.00"},
			{"779456", "Azucar, 1kg", "1200.50"},
		},
	}
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	assert.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, format)

	format, err = ParseExportFormat("xlsx")
	assert.NoError(t, err)
	assert.Equal(t, ExportFormatXLSX, format)

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}

func TestEncodeCSV(t *testing.T) {
	data, err := encodeCSV(sampleDataset())
	require.NoError(t, err)

	want := "barcode,name,price\n" +
		"779123,Yerba Mate 1kg,4500.00\n" +
		"779456,\"Azucar, 1kg\",1200.50\n"
	assert.Equal(t, want, string(data))
}

func TestEncodeXLSX(t *testing.T) {
	data, err := encodeXLSX(sampleDataset())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "barcode", header)

	name, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Azucar, 1kg", name)
}
