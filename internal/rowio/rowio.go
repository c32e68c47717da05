// Package rowio reads raw contact rows from delimited text files and Excel
// workbooks. It hands the core a fully materialized row sequence; all input
// fallibility (missing files, undecodable formats) surfaces here.
package rowio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrUnsupportedFormat = errors.New("rowio: unsupported format")
	ErrUnreadable        = errors.New("rowio: unreadable input")
)

// Format identifies a supported input file format.
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatWorkbook  Format = "workbook"
)

// Options configures how a source reads rows.
type Options struct {
	Delimiter rune   // field separator for delimited text; 0 picks a default by extension
	Sheet     string // worksheet name for workbooks; empty picks the first sheet
}

// Source reads all rows from the file at path.
type Source func(path string, opts Options) ([][]string, error)

// Registry maps formats to row sources.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	sources map[Format]Source
}

// NewRegistry creates a Registry with the built-in delimited and workbook
// sources registered.
func NewRegistry() *Registry {
	r := &Registry{sources: make(map[Format]Source)}
	r.Register(FormatDelimited, readDelimited)
	r.Register(FormatWorkbook, readWorkbook)
	return r
}

// Register adds a source for a format. Overwrites if the format already
// exists. Panics on a nil source (programmer error).
func (r *Registry) Register(f Format, s Source) {
	if s == nil {
		panic("rowio: Register called with nil source")
	}
	r.sources[f] = s
}

// Read detects the format of path and reads all of its rows.
func (r *Registry) Read(path string, opts Options) ([][]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	src, ok := r.sources[format]
	if !ok {
		return nil, fmt.Errorf("%w: no source registered for %q", ErrUnsupportedFormat, format)
	}
	return src(path, opts)
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []Format {
	formats := make([]Format, 0, len(r.sources))
	for f := range r.sources {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// extensionFormats maps known file extensions to formats.
var extensionFormats = map[string]Format{
	".csv":  FormatDelimited,
	".tsv":  FormatDelimited,
	".txt":  FormatDelimited,
	".dat":  FormatDelimited,
	".xlsx": FormatWorkbook,
}

// DetectFormat determines the input format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := extensionFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// delimiterFor picks the field separator: an explicit option wins, .tsv
// defaults to tab, everything else to comma.
func delimiterFor(path string, opts Options) rune {
	if opts.Delimiter != 0 {
		return opts.Delimiter
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// readDelimited reads all rows from a delimited text file. Ragged rows are
// passed through unchanged; the core degrades missing fields to empty
// contact fields.
func readDelimited(path string, opts Options) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiterFor(path, opts)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrUnsupportedFormat, path, err)
	}
	return rows, nil
}
