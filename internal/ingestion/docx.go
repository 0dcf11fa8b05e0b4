package ingestion

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nguyenthenguyen/docx"
)

// readDocx extracts paragraph text from a Word document
func readDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ReadError{Reader: "docx", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	text, err := documentXMLText(doc.Editable().GetContent())
	if err != nil {
		return "", &ReadError{Reader: "docx", Message: "failed to decode document body", Cause: err}
	}
	return text, nil
}

// documentXMLText walks WordprocessingML, keeping w:t runs and ending a line at each w:p.
func documentXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// readPlain decodes text files, replacing invalid UTF-8
func readPlain(data []byte) (string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	return strings.TrimPrefix(text, "\ufeff"), nil
}
