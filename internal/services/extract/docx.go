package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCX extracts paragraph text from a Word document. A .docx file is
// a zip archive; the document body lives in word/document.xml with text runs
// in <w:t> elements grouped into <w:p> paragraphs.
func (s *Service) extractDOCX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var docFile *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("docx archive has no word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document body: %w", err)
	}
	defer rc.Close()

	text, err := readDocumentText(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse document body: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// readDocumentText walks the document XML, collecting run text per paragraph.
func readDocumentText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var text strings.Builder
	var inRun bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "t":
				inRun = true
			case "tab":
				text.WriteString("\t")
			case "br":
				text.WriteString("\n")
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inRun = false
			case "p":
				text.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				text.Write(tok)
			}
		}
	}

	return text.String(), nil
}
