// Package docx extracts body paragraph text from Office Open XML word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// WordprocessingML main namespace.
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var ErrNoDocumentPart = errors.New("docx: word/document.xml not found")

// Paragraphs returns the trimmed, non-blank top-level body paragraphs of the document in
// order. Paragraphs nested in tables or other containers are not included.
func Paragraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx: open archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, ErrNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: open %s: %w", documentPart, err)
	}
	defer rc.Close()

	return readBody(rc)
}

func readBody(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack     []xml.Name
		inPara    bool
		inText    bool
		buf       strings.Builder
		out       []string
		paraDepth int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("docx: decode %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isWord(t.Name, "p") && !inPara && len(stack) > 0 && isWord(stack[len(stack)-1], "body") {
				inPara = true
				paraDepth = len(stack)
				buf.Reset()
			}
			if inPara && t.Name.Space == wordNS && inRun(stack[paraDepth:]) {
				switch t.Name.Local {
				case "t":
					inText = true
				case "tab":
					buf.WriteByte('\t')
				case "br", "cr":
					buf.WriteByte('\n')
				}
			}
			stack = append(stack, t.Name)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("docx: unbalanced element %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
			if isWord(t.Name, "t") {
				inText = false
			}
			if inPara && isWord(t.Name, "p") && len(stack) == paraDepth {
				inPara = false
				if text := strings.TrimSpace(buf.String()); text != "" {
					out = append(out, text)
				}
			}
		case xml.CharData:
			if inPara && inText {
				buf.Write(t)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("docx: truncated %s", documentPart)
	}
	return out, nil
}

// inRun reports whether path, starting at the body paragraph, ends in a run that belongs
// to the paragraph itself: p/r or p/hyperlink/r. Runs inside text boxes, drawings,
// alternate content and tracked changes do not qualify.
func inRun(path []xml.Name) bool {
	switch len(path) {
	case 2:
		return isWord(path[1], "r")
	case 3:
		return isWord(path[1], "hyperlink") && isWord(path[2], "r")
	}
	return false
}

func isWord(n xml.Name, local string) bool {
	return n.Space == wordNS && n.Local == local
}
