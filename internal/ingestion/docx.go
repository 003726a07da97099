package ingestion

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// wordprocessingML element names.
const (
	wordText      = "t"
	wordTab       = "tab"
	wordBreak     = "br"
	wordParagraph = "p"
	wordTable     = "tbl"
)

// DocumentXMLText converts a WordprocessingML document body to plain text,
// one paragraph per line. It also reports whether the body holds a table.
func DocumentXMLText(content string) (string, bool, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false

	var sb strings.Builder
	hasTables := false
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case wordText:
				inText = true
			case wordTab:
				sb.WriteString("\t")
			case wordBreak:
				sb.WriteString("\n")
			case wordTable:
				hasTables = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case wordText:
				inText = false
			case wordParagraph:
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), hasTables, nil
}
