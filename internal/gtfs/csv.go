package gtfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// record is one data row of a feed file, addressed by header field name.
type record struct {
	header map[string]int
	fields []string
}

// Get returns the named field, or "" when the column is absent from the feed
// or the row is short. GTFS treats an empty string as a missing value, so
// callers only ever need the one accessor.
func (r record) Get(name string) string {
	idx, ok := r.header[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// feedFile streams one delimited feed file record by record. The first row is
// consumed as the header.
type feedFile struct {
	name   string
	f      *os.File
	reader *csv.Reader
	header map[string]int
}

func openFeedFile(dir, name string) (*feedFile, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("error opening feed file %s: %w", name, err)
	}

	reader := csv.NewReader(f)
	// Feeds in the wild have ragged rows; field count is validated by the
	// per-record rules, not the reader.
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	headerRow, err := reader.Read()
	if err != nil {
		f.Close() // nolint:errcheck
		return nil, fmt.Errorf("error reading %s header: %w", name, err)
	}

	header := make(map[string]int, len(headerRow))
	for i, field := range headerRow {
		if i == 0 {
			// UTF-8 byte order mark, if present, is glued to the first
			// header name.
			field = strings.TrimPrefix(field, "\uFEFF")
		}
		header[strings.TrimSpace(field)] = i
	}

	return &feedFile{name: name, f: f, reader: reader, header: header}, nil
}

// Next returns the next data record, or io.EOF at the end of the file.
func (ff *feedFile) Next() (record, error) {
	fields, err := ff.reader.Read()
	if err == io.EOF {
		return record{}, io.EOF
	}
	if err != nil {
		return record{}, fmt.Errorf("error reading %s record: %w", ff.name, err)
	}
	return record{header: ff.header, fields: fields}, nil
}

func (ff *feedFile) Close() error {
	return ff.f.Close()
}
