package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/models"
)

func newTestExtractService() *Service {
	return NewService("", arbor.NewLogger())
}

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractFileUnsupportedType(t *testing.T) {
	svc := newTestExtractService()

	_, err := svc.ExtractFile(context.Background(), "archive.zip", []byte("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnsupportedFileType)
	assert.Contains(t, err.Error(), "archive.zip")
}

func TestExtractFilePlainText(t *testing.T) {
	svc := newTestExtractService()

	text, err := svc.ExtractFile(context.Background(), "notes.TXT", []byte("  pitch notes\n"))
	require.NoError(t, err)
	assert.Equal(t, "pitch notes", text)
}

func TestExtractFileRejectsBinaryText(t *testing.T) {
	svc := newTestExtractService()

	_, err := svc.ExtractFile(context.Background(), "notes.txt", []byte{0xff, 0xfe, 0x00})
	require.Error(t, err)
}

func TestExtractDOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Acme raised </w:t></w:r><w:r><w:t>$2M</w:t></w:r></w:p>
    <w:p><w:r><w:t>Team of eight</w:t></w:r></w:p>
  </w:body>
</w:document>`
	data := buildZip(t, map[string]string{"word/document.xml": doc})

	svc := newTestExtractService()
	text, err := svc.ExtractFile(context.Background(), "memo.docx", data)
	require.NoError(t, err)

	assert.Contains(t, text, "Acme raised $2M")
	assert.Contains(t, text, "Team of eight")
}

func TestExtractDOCXMissingBody(t *testing.T) {
	data := buildZip(t, map[string]string{"other.xml": "<x/>"})

	svc := newTestExtractService()
	_, err := svc.ExtractFile(context.Background(), "memo.docx", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractXLSX(t *testing.T) {
	workbook := `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
          xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets><sheet name="Financials" sheetId="1" r:id="rId1"/></sheets>
</workbook>`
	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`
	sharedStrings := `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si><t>Revenue</t></si>
  <si><r><t>Burn </t></r><r><t>Rate</t></r></si>
</sst>`
	sheet := `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row><c t="s"><v>0</v></c><c><v>450000</v></c></row>
    <row><c t="s"><v>1</v></c><c t="inlineStr"><is><t>75k/month</t></is></c></row>
  </sheetData>
</worksheet>`
	data := buildZip(t, map[string]string{
		"xl/workbook.xml":            workbook,
		"xl/_rels/workbook.xml.rels": rels,
		"xl/sharedStrings.xml":       sharedStrings,
		"xl/worksheets/sheet1.xml":   sheet,
	})

	svc := newTestExtractService()
	text, err := svc.ExtractFile(context.Background(), "model.xlsx", data)
	require.NoError(t, err)

	assert.Contains(t, text, "Sheet: Financials")
	assert.Contains(t, text, "Revenue\t450000")
	assert.Contains(t, text, "Burn Rate\t75k/month")
}

func TestExtractAllAggregatesAndRecordsErrors(t *testing.T) {
	svc := newTestExtractService()

	files := []models.UploadedFile{
		{Name: "notes.txt", Data: []byte("pitch notes")},
		{Name: "archive.zip", Data: []byte("data")},
		{Name: "empty.txt", Data: []byte("   ")},
		{Name: "more.txt", Data: []byte("more notes")},
	}

	text, fileErrors := svc.ExtractAll(context.Background(), files)

	assert.Contains(t, text, "=== notes.txt ===\npitch notes")
	assert.Contains(t, text, "=== more.txt ===\nmore notes")
	// Blank files are skipped without a label or an error entry
	assert.NotContains(t, text, "empty.txt")

	require.Len(t, fileErrors, 1)
	assert.Equal(t, "archive.zip", fileErrors[0].Filename)
	assert.Contains(t, fileErrors[0].Error, "unsupported")
}
