// Package pipeline orchestrates the row-to-vCard conversion: window
// selection, contact mapping, and serialization.
package pipeline

import (
	"strings"

	"github.com/vcardify/vcardify/internal/contact"
	"github.com/vcardify/vcardify/internal/vcard"
)

// Stage identifies a conversion step for status reporting.
type Stage string

const (
	StageSelect    Stage = "select"
	StageMap       Stage = "map"
	StageSerialize Stage = "serialize"
)

// StatusUpdate reports completion of one conversion stage.
type StatusUpdate struct {
	Stage Stage
	Count int // rows or contacts processed by the stage
}

// StatusCallback receives a StatusUpdate after each stage completes.
type StatusCallback func(StatusUpdate)

// Converter runs the conversion over an in-memory row sequence. It holds no
// mutable state between invocations; every Convert call is independent.
type Converter struct {
	ser   *vcard.Serializer
	start int
	end   int
	cb    StatusCallback
}

// Option configures a Converter.
type Option func(*Converter)

// WithSerializer overrides the vCard serializer.
func WithSerializer(s *vcard.Serializer) Option {
	return func(c *Converter) {
		c.ser = s
	}
}

// WithWindow restricts conversion to the 1-based row window [start, end].
// Zero means unbounded on that side.
func WithWindow(start, end int) Option {
	return func(c *Converter) {
		c.start = start
		c.end = end
	}
}

// WithStatusCallback registers a callback invoked after each stage.
func WithStatusCallback(cb StatusCallback) Option {
	return func(c *Converter) {
		c.cb = cb
	}
}

// New creates a Converter. Without options it converts all rows using a
// default serializer (wall clock, no telephone formatting).
func New(opts ...Option) *Converter {
	c := &Converter{ser: vcard.NewSerializer()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Output is the result of one conversion.
type Output struct {
	VCards string // concatenated vCard blocks, each ending with its own line break
	Count  int    // number of contacts converted
}

// Convert selects the configured row window, maps each row to a contact, and
// serializes every contact in input order. An empty selection yields an empty
// blob and a zero count; short or malformed rows degrade to partially filled
// contacts rather than aborting.
func (c *Converter) Convert(rows [][]string) Output {
	window := contact.Window(rows, c.start, c.end)
	c.report(StageSelect, len(window))

	contacts := make([]contact.Contact, len(window))
	for i, row := range window {
		contacts[i] = contact.FromRow(row)
	}
	c.report(StageMap, len(contacts))

	var b strings.Builder
	for _, ct := range contacts {
		b.WriteString(c.ser.Serialize(ct))
	}
	c.report(StageSerialize, len(contacts))

	return Output{VCards: b.String(), Count: len(contacts)}
}

func (c *Converter) report(stage Stage, count int) {
	if c.cb != nil {
		c.cb(StatusUpdate{Stage: stage, Count: count})
	}
}
