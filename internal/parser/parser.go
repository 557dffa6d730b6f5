package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
)

// PageText is the extracted text of one page-oriented unit.
type PageText struct {
	Text    string
	PageNum int // 1-based
}

// RowText is one spreadsheet row, cell values in column order.
type RowText struct {
	Cells []string
	Row   int // 0-based
}

// Document is the raw extraction of one source file. Page-oriented formats
// fill Pages, row-oriented formats fill Rows; never both.
type Document struct {
	Source string
	Pages  []PageText
	Rows   []RowText
}

// Parse extracts text from a document file based on its extension.
func Parse(filePath string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return parsePDF(filePath)
	case ".xlsx":
		return parseXLSX(filePath)
	case ".ods":
		return parseODS(filePath)
	case ".docx":
		return parseDOCX(filePath)
	case ".txt":
		return parseText(filePath)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

func parsePDF(filePath string) (*Document, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: filepath.Base(filePath)}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, PageText{Text: pageText, PageNum: i})
	}
	return doc, nil
}

func parseXLSX(filePath string) (*Document, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: filepath.Base(filePath)}
	rowIdx := 0
	for _, sheet := range f.Sheets {
		for _, row := range sheet.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			doc.Rows = append(doc.Rows, RowText{Cells: cells, Row: rowIdx})
			rowIdx++
		}
	}
	return doc, nil
}

func parseODS(filePath string) (*Document, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := &Document{Source: filepath.Base(filePath)}
	rowIdx := 0
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		for _, row := range rows {
			doc.Rows = append(doc.Rows, RowText{Cells: row, Row: rowIdx})
			rowIdx++
		}
	}
	return doc, nil
}

func parseDOCX(filePath string) (*Document, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	doc := &Document{Source: filepath.Base(filePath)}
	if strings.TrimSpace(content) != "" {
		// DOCX has no page boundaries; treat the whole body as one page
		doc.Pages = append(doc.Pages, PageText{Text: content, PageNum: 1})
	}
	return doc, nil
}

func parseText(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	doc := &Document{Source: filepath.Base(filePath)}
	if strings.TrimSpace(string(data)) != "" {
		doc.Pages = append(doc.Pages, PageText{Text: string(data), PageNum: 1})
	}
	return doc, nil
}
