package corpus

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Passage is a single stored text.
type Passage struct {
	ID         int64  `json:"id"`
	Collection string `json:"collection"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content"`
}

// Collection is a manifest plus the passages read from its data file.
type Collection struct {
	Manifest *Manifest
	Passages []Passage
}

// LoadCollection reads dir/manifest.yaml and the data file it names.
// If the data file is missing and the manifest carries a source_url, the
// file is downloaded first.
func LoadCollection(ctx context.Context, dir string) (*Collection, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	dataPath := filepath.Join(dir, manifest.DataFile)
	if _, err := os.Stat(dataPath); os.IsNotExist(err) && manifest.SourceURL != "" {
		slog.Info("fetching collection data", "collection", manifest.ID, "url", manifest.SourceURL)
		if err := downloadFile(ctx, manifest.SourceURL, dataPath); err != nil {
			return nil, fmt.Errorf("collection %s: %w", manifest.ID, err)
		}
	}

	c := &Collection{Manifest: manifest}
	if err := c.load(dataPath); err != nil {
		return nil, fmt.Errorf("collection %s: %w", manifest.ID, err)
	}
	return c, nil
}

func (c *Collection) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	// Transcode legacy encodings (windows-1256, iso-8859-6) declared in the manifest.
	var reader io.Reader = f
	if enc := c.Manifest.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	if c.Manifest.Format.Kind == "lines" {
		return c.readLines(reader)
	}
	return c.readCSV(reader)
}

func (c *Collection) readLines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		c.Passages = append(c.Passages, Passage{Collection: c.Manifest.ID, Content: line})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read lines: %w", err)
	}
	return nil
}

func (c *Collection) readCSV(reader io.Reader) error {
	r := csv.NewReader(reader)
	if delim := c.Manifest.Format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var header []string
	if c.Manifest.Format.HasHeader {
		var err error
		header, err = r.Read()
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	contentIdx, err := columnIndex(header, c.Manifest.Format.ContentColumn, 0)
	if err != nil {
		return err
	}
	titleIdx, err := columnIndex(header, c.Manifest.Format.TitleColumn, -1)
	if err != nil {
		return err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if contentIdx >= len(record) {
			continue
		}
		content := strings.TrimSpace(record[contentIdx])
		if content == "" {
			continue
		}
		p := Passage{Collection: c.Manifest.ID, Content: content}
		if titleIdx >= 0 && titleIdx < len(record) {
			p.Title = strings.TrimSpace(record[titleIdx])
		}
		c.Passages = append(c.Passages, p)
	}
	return nil
}

// columnIndex resolves a named column against the header.
// An empty name yields def; a name without a header is an error.
func columnIndex(header []string, name string, def int) (int, error) {
	if name == "" {
		return def, nil
	}
	if header == nil {
		return 0, fmt.Errorf("column %q requires has_header", name)
	}
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
