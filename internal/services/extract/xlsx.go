package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// Minimal SpreadsheetML structures for text dumping. Only the parts needed
// to walk sheets, rows, and cell values are modeled.
type xlsxWorkbook struct {
	Sheets []xlsxSheetRef `xml:"sheets>sheet"`
}

type xlsxSheetRef struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"`
}

type xlsxRels struct {
	Relationships []xlsxRel `xml:"Relationship"`
}

type xlsxRel struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

type xlsxSharedStrings struct {
	Items []xlsxSharedString `xml:"si"`
}

type xlsxSharedString struct {
	Text string       `xml:"t"`
	Runs []xlsxRunRef `xml:"r"`
}

type xlsxRunRef struct {
	Text string `xml:"t"`
}

func (si xlsxSharedString) value() string {
	if len(si.Runs) == 0 {
		return si.Text
	}
	var b strings.Builder
	for _, run := range si.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

type xlsxWorksheet struct {
	Rows []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	Cells []xlsxCell `xml:"c"`
}

type xlsxCell struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline struct {
		Text string `xml:"t"`
	} `xml:"is"`
}

// extractXLSX dumps spreadsheet content as text, one "Sheet: name" section
// per worksheet with tab-joined rows.
func (s *Service) extractXLSX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet archive: %w", err)
	}

	files := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		files[f.Name] = f
	}

	var workbook xlsxWorkbook
	if err := decodeZipXML(files, "xl/workbook.xml", &workbook); err != nil {
		return "", fmt.Errorf("failed to read workbook: %w", err)
	}

	var rels xlsxRels
	if err := decodeZipXML(files, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return "", fmt.Errorf("failed to read workbook relationships: %w", err)
	}
	relTargets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		relTargets[rel.ID] = rel.Target
	}

	// Shared strings are optional; sheets with only numbers have none
	var shared xlsxSharedStrings
	if _, ok := files["xl/sharedStrings.xml"]; ok {
		if err := decodeZipXML(files, "xl/sharedStrings.xml", &shared); err != nil {
			return "", fmt.Errorf("failed to read shared strings: %w", err)
		}
	}

	var text strings.Builder
	for _, sheetRef := range workbook.Sheets {
		target := relTargets[sheetRef.RID]
		if target == "" {
			continue
		}
		sheetPath := path.Join("xl", target)

		var sheet xlsxWorksheet
		if err := decodeZipXML(files, sheetPath, &sheet); err != nil {
			return "", fmt.Errorf("failed to read sheet %s: %w", sheetRef.Name, err)
		}

		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetRef.Name))

		for _, row := range sheet.Rows {
			values := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				values = append(values, cellValue(cell, shared.Items))
			}
			text.WriteString(strings.Join(values, "\t"))
			text.WriteString("\n")
		}
	}

	return strings.TrimSpace(text.String()), nil
}

// cellValue resolves a cell to display text, following the shared string
// table for t="s" cells and inline strings for t="inlineStr".
func cellValue(cell xlsxCell, shared []xlsxSharedString) string {
	switch cell.Type {
	case "s":
		var idx int
		if _, err := fmt.Sscanf(cell.Value, "%d", &idx); err == nil && idx >= 0 && idx < len(shared) {
			return shared[idx].value()
		}
		return ""
	case "inlineStr":
		return cell.Inline.Text
	default:
		return cell.Value
	}
}

func decodeZipXML(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("archive entry %s not found", name)
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	return xml.NewDecoder(rc).Decode(v)
}
