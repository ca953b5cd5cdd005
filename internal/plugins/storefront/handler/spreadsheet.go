package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"

	templateSheet = "Products Template"
)

// templateSample 템플릿 안내용 예시 행 (ImportColumns 순서)
var templateSample = []string{
	"مثال: برجر دجاج", "وصف للمنتج...", "45", "دواجن مجمدة", "أمريكانا",
	"كيس", "0", "https://picsum.photos/400/300", "2", "80",
}

var errEmptySheet = errors.New("no rows")

// isCSVUpload 확장자나 Content-Type이 CSV인지 확인. 나머지는 xlsx로 읽는다.
func isCSVUpload(fh *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		return true
	}
	return strings.HasPrefix(fh.Header.Get("Content-Type"), "text/csv")
}

// readSpreadsheet 업로드 파일의 첫 시트를 행으로 변환. 첫 줄은 컬럼명이며 빈 줄은 건너뛴다.
func readSpreadsheet(fh *multipart.FileHeader) ([]domain.ImportRow, error) {
	if fh.Size > maxImportBytes {
		return nil, fmt.Errorf("file too large (%d bytes)", fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records [][]string
	if isCSVUpload(fh) {
		records, err = csvRecords(f)
	} else {
		records, err = xlsxRecords(f)
	}
	if err != nil {
		return nil, err
	}
	return importRows(records)
}

func csvRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func xlsxRecords(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errEmptySheet
	}
	return book.GetRows(sheets[0])
}

func importRows(records [][]string) ([]domain.ImportRow, error) {
	if len(records) == 0 {
		return nil, errEmptySheet
	}
	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")] = i
	}

	var rows []domain.ImportRow
	for _, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		rows = append(rows, domain.ImportRowFromRecord(header, record))
	}
	if len(rows) == 0 {
		return nil, errEmptySheet
	}
	return rows, nil
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// xlsxTemplate 컬럼명과 예시 행이 있는 가져오기 템플릿
func xlsxTemplate() ([]byte, error) {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), templateSheet); err != nil {
		return nil, err
	}
	for i, row := range [][]string{domain.ImportColumns, templateSample} {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := book.SetSheetRow(templateSheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvTemplate xlsx 템플릿과 같은 내용의 CSV
func csvTemplate() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{domain.ImportColumns, templateSample}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
