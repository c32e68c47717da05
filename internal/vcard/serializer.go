// Package vcard serializes contacts into vCard 4.0 text blocks and decodes
// existing vCard files for inspection.
package vcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/vcardify/vcardify/internal/contact"
	"github.com/vcardify/vcardify/internal/phone"
)

// revLayout is the REV timestamp layout: ISO-8601 basic format, UTC, no
// sub-second fraction.
const revLayout = "20060102T150405Z"

// Serializer converts contacts into vCard 4.0 text blocks.
type Serializer struct {
	now             func() time.Time
	formatTelephone bool
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithClock overrides the clock used for REV timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Serializer) {
		s.now = now
	}
}

// WithTelephoneFormatting enables international display formatting of
// telephone numbers in TEL lines.
func WithTelephoneFormatting(enabled bool) Option {
	return func(s *Serializer) {
		s.formatTelephone = enabled
	}
}

// NewSerializer creates a Serializer. The default clock is time.Now and
// telephone formatting is off.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serialize renders c as a single vCard 4.0 block. Lines appear in a fixed
// order and each ends with "\n":
//
//	BEGIN:VCARD
//	VERSION:4.0
//	N:{last};{first};;;        (only when a name is present)
//	FN:{first} {last}          (only when a name is present)
//	TEL;TYPE=cell:{telephone}  (only when a telephone is present)
//	EMAIL:{email}              (only when an email is present)
//	REV:{timestamp}
//	END:VCARD
//
// FN always joins the two name parts with a single space, even when one is
// empty; downstream consumers depend on that exact shape. Field values are
// emitted verbatim, without vCard escaping of semicolons or commas.
func (s *Serializer) Serialize(c contact.Contact) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:4.0\n")

	if c.FirstName != "" || c.LastName != "" {
		fmt.Fprintf(&b, "N:%s;%s;;;\n", c.LastName, c.FirstName)
		fmt.Fprintf(&b, "FN:%s %s\n", c.FirstName, c.LastName)
	}

	if c.Telephone != "" {
		fmt.Fprintf(&b, "TEL;TYPE=cell:%s\n", phone.Format(c.Telephone, s.formatTelephone))
	}

	if c.Email != "" {
		fmt.Fprintf(&b, "EMAIL:%s\n", c.Email)
	}

	fmt.Fprintf(&b, "REV:%s\n", s.now().UTC().Format(revLayout))
	b.WriteString("END:VCARD\n")

	return b.String()
}
