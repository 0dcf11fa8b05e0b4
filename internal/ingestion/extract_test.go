package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/skill-gap-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	tests := []struct {
		fileName string
		wantExt  string
	}{
		{"resume.xyz", ".xyz"},
		{"resume.PNG", ".png"},
		{"resume", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			doc, err := Extract([]byte("data"), tt.fileName, nil)
			require.Error(t, err)
			assert.Nil(t, doc)

			var formatErr *UnsupportedFormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.wantExt, formatErr.Extension)
			if tt.wantExt != "" {
				assert.Contains(t, err.Error(), tt.wantExt)
			}
		})
	}
}

func TestExtract_FormatNotAllowed(t *testing.T) {
	_, err := Extract([]byte("hello"), "resume.txt", &Options{Formats: []string{"pdf", ".docx"}})

	var formatErr *UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, ".txt", formatErr.Extension)
}

func TestExtract_TooLarge(t *testing.T) {
	_, err := Extract(bytes.Repeat([]byte("a"), 11), "resume.txt", &Options{MaxBytes: 10})

	var sizeErr *FileTooLargeError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, int64(11), sizeErr.Size)
	assert.Equal(t, int64(10), sizeErr.Limit)
}

func TestExtract_PlainText(t *testing.T) {
	data := []byte("\ufeffJane   Doe\r\n\r\n\r\n\r\nSkills: Python, Docker")

	doc, err := Extract(data, "uploads/Resume.TXT", nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\nSkills: Python, Docker", doc.RawText)
	assert.Equal(t, "Resume.TXT", doc.FileName)
	assert.Equal(t, ".txt", doc.FileFormat)
	assert.False(t, doc.LowQuality)
	assert.Len(t, doc.Checksum, 64)
}

func TestExtract_ChecksumDependsOnBytes(t *testing.T) {
	a, err := Extract([]byte("python"), "a.md", nil)
	require.NoError(t, err)
	b, err := Extract([]byte("python"), "b.md", nil)
	require.NoError(t, err)
	c, err := Extract([]byte("golang"), "c.md", nil)
	require.NoError(t, err)

	assert.Equal(t, a.Checksum, b.Checksum)
	assert.NotEqual(t, a.Checksum, c.Checksum)
}

func TestExtract_HTML(t *testing.T) {
	html := `<html><head><style>body{}</style><script>var x = 1;</script></head>
<body><nav>Home | About</nav>
<main><h1>Jane Doe</h1><p>Backend engineer</p><ul><li>Go</li><li>Kubernetes</li></ul></main>
</body></html>`

	doc, err := Extract([]byte(html), "resume.html", nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nBackend engineer\nGo\nKubernetes", doc.RawText)
	assert.NotContains(t, doc.RawText, "var x")
	assert.NotContains(t, doc.RawText, "Home")
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t, "Jane Doe", "Skills: Python, SQL")

	doc, err := Extract(data, "resume.docx", nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nSkills: Python, SQL", doc.RawText)
	assert.Equal(t, ".docx", doc.FileFormat)
	assert.False(t, doc.LowQuality)
}

func TestExtract_UnreadableDocumentYieldsPlaceholder(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"resume.pdf", "[PDF text could not be extracted]"},
		{"resume.doc", "[DOC text could not be extracted]"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			doc, err := Extract([]byte("definitely not a document"), tt.fileName, nil)
			require.NoError(t, err)

			assert.True(t, doc.LowQuality)
			assert.Equal(t, tt.want, doc.RawText)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")
	require.NoError(t, os.WriteFile(path, []byte("# Jane\n\n- Go"), 0o644))

	doc, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "# Jane\n\n- Go", doc.RawText)
	assert.Equal(t, "resume.md", doc.FileName)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.md"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	_, err = ReadFile("resume.odt", nil)
	var formatErr *UnsupportedFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{".doc", ".docx", ".htm", ".html", ".md", ".pdf", ".txt"}, SupportedFormats())
}

func TestDocumentXMLText(t *testing.T) {
	content := `<w:document xmlns:w="w"><w:body>` +
		`<w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>Rust</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>` +
		`<w:p><w:r><w:instrText>IGNORED</w:instrText></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := documentXMLText(content)
	require.NoError(t, err)
	assert.Equal(t, "Go\tRust\nline\nbreak\n\n", text)
}

func TestExtractContactInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.ContactInfo
	}{
		{
			name: "all fields",
			text: "Jane Doe\njane.doe+jobs@example.co.uk | (555) 123-4567\nhttps://www.LinkedIn.com/in/jane-doe-42",
			want: types.ContactInfo{
				Email:    "jane.doe+jobs@example.co.uk",
				Phone:    "(555) 123-4567",
				LinkedIn: "LinkedIn.com/in/jane-doe-42",
			},
		},
		{
			name: "first match wins",
			text: "a@x.io b@y.io 555.111.2222 555.333.4444",
			want: types.ContactInfo{Email: "a@x.io", Phone: "555.111.2222"},
		},
		{
			name: "nothing found",
			text: "Experienced engineer",
			want: types.ContactInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContactInfo(tt.text))
		})
	}
}
