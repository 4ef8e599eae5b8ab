// Package excel loads spreadsheet and CSV files into grid table sources.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gostats/domain/table"
)

// DataReader loads Excel and CSV files as grid sources.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given file; the type is inferred
// from the extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadGrid reads the file into a table.Grid source.
func (r *DataReader) ReadGrid() (*table.Grid, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}
	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcel reads the first sheet into a grid.
func (r *DataReader) readExcel() (*table.Grid, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	log.Printf("[DataReader] read %d rows from %s sheet %s", len(rows), r.filePath, sheets[0])
	return &table.Grid{Cells: rows}, nil
}

// readCSV reads a CSV file into a grid.
func (r *DataReader) readCSV() (*table.Grid, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	log.Printf("[DataReader] read %d rows from %s", len(records), r.filePath)
	return &table.Grid{Cells: records}, nil
}

// ReadFrame reads the file as a column-oriented frame, treating the first
// row as column names.
func (r *DataReader) ReadFrame() (*table.Frame, error) {
	grid, err := r.ReadGrid()
	if err != nil {
		return nil, err
	}
	if len(grid.Cells) < 1 {
		return nil, fmt.Errorf("file has no header row")
	}
	header := grid.Cells[0]
	columns := make([]table.FrameColumn, len(header))
	for c, name := range header {
		columns[c].Name = strings.TrimSpace(name)
		for _, row := range grid.Cells[1:] {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			columns[c].Cells = append(columns[c].Cells, cell)
		}
	}
	return &table.Frame{Columns: columns}, nil
}
