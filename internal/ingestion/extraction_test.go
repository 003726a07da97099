package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Python, </w:t></w:r><w:r><w:t>SQL</w:t></w:r></w:p>
<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>2021</w:t><w:br/><w:t>Rust</w:t></w:r></w:p>
</w:body>
</w:document>`

const tableXML = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
</w:body></w:document>`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":            body,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocumentXMLText(t *testing.T) {
	text, tables, err := DocumentXMLText(documentXML)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nSkills\nPython, SQL\nGo\t2021\nRust", text)
	assert.False(t, tables)
}

func TestDocumentXMLText_DetectsTables(t *testing.T) {
	text, tables, err := DocumentXMLText(tableXML)
	require.NoError(t, err)

	assert.True(t, tables)
	assert.Equal(t, "Cell", text)
}

func TestFileExtractor_Docx(t *testing.T) {
	doc, err := NewFileExtractor().ExtractBytes(context.Background(), "resume.DOCX", buildDocx(t, tableXML))
	require.NoError(t, err)

	assert.Equal(t, ExtDOCX, doc.Extension)
	assert.Equal(t, "Cell", doc.Text)
	assert.True(t, doc.HasTables)
}

func TestFileExtractor_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\nSkills\r\nGo"), 0o644))

	doc, err := NewFileExtractor().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nSkills\nGo", doc.Text)
	assert.Equal(t, ExtTXT, doc.Extension)
	assert.Equal(t, path, doc.Path)
}

func TestFileExtractor_UnsupportedType(t *testing.T) {
	_, err := NewFileExtractor().Extract(context.Background(), "resume.odt")
	require.Error(t, err)

	var unsupported *UnsupportedFileTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".odt", unsupported.Extension)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestFileExtractor_MissingFile(t *testing.T) {
	_, err := NewFileExtractor().Extract(context.Background(), "/nonexistent/resume.pdf")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestFileExtractor_MalformedFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"pdf garbage", "cv.pdf", []byte("definitely not a pdf")},
		{"docx garbage", "cv.docx", []byte("not a zip archive")},
		{"invalid utf8 text", "cv.txt", []byte{0xff, 0xfe, 0xfd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileExtractor().ExtractBytes(context.Background(), tt.file, tt.data)

			var extractionErr *ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, tt.file, extractionErr.Path)
		})
	}
}

func TestFileExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileExtractor().ExtractBytes(ctx, "cv.txt", []byte("text"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(".pdf"))
	assert.True(t, IsSupported(".DOCX"))
	assert.True(t, IsSupported(".txt"))
	assert.False(t, IsSupported(".doc"))
	assert.False(t, IsSupported(""))
}
