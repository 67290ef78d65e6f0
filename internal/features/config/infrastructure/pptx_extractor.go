package infrastructure

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ErrNotPresentation is returned for uploads that are not a readable .pptx deck.
var ErrNotPresentation = errors.New("not a pptx presentation")

const (
	slidePrefix = "ppt/slides/"
	drawingNS   = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

// ExtractPPTXText returns the text of every slide, in slide order, one line per
// text paragraph.
func ExtractPPTXText(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}

	slides := slideFiles(zr)
	if len(slides) == 0 {
		return "", fmt.Errorf("%w: no slides found", ErrNotPresentation)
	}

	var lines []string
	for _, f := range slides {
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		paragraphs, err := slideParagraphs(b)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", f.Name, err)
		}
		lines = append(lines, paragraphs...)
	}
	return strings.Join(lines, "\n"), nil
}

// slideFiles returns ppt/slides/slideN.xml entries sorted by N.
func slideFiles(zr *zip.Reader) []*zip.File {
	type numbered struct {
		n int
		f *zip.File
	}
	var found []numbered
	for _, f := range zr.File {
		if path.Dir(f.Name)+"/" != slidePrefix {
			continue
		}
		base := path.Base(f.Name)
		if !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml"))
		if err != nil {
			continue
		}
		found = append(found, numbered{n: n, f: f})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]*zip.File, 0, len(found))
	for _, s := range found {
		out = append(out, s.f)
	}
	return out
}

func slideParagraphs(xmlBytes []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var (
		out  []string
		line strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != drawingNS {
				continue
			}
			switch el.Name.Local {
			case "p":
				line.Reset()
			case "t":
				var v string
				if err := dec.DecodeElement(&v, &el); err != nil {
					return nil, err
				}
				line.WriteString(v)
			case "br":
				line.WriteString(" ")
			}
		case xml.EndElement:
			if el.Name.Space == drawingNS && el.Name.Local == "p" {
				if s := strings.TrimSpace(line.String()); s != "" {
					out = append(out, s)
				}
				line.Reset()
			}
		}
	}
	return out, nil
}
