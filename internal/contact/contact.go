// Package contact defines the Contact record and the row-to-contact mapping.
package contact

// Contact holds one person's data as mapped from a single source row.
// All fields are optional; absent source columns leave them empty.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Telephone string
}

// FromRow maps a raw row onto a Contact by position: column 0 is the first
// name, 1 the last name, 2 the email address, 3 the telephone number.
// Columns beyond the fourth are ignored. Rows shorter than four columns
// leave the trailing fields empty rather than failing.
func FromRow(row []string) Contact {
	var c Contact
	if len(row) > 0 {
		c.FirstName = row[0]
	}
	if len(row) > 1 {
		c.LastName = row[1]
	}
	if len(row) > 2 {
		c.Email = row[2]
	}
	if len(row) > 3 {
		c.Telephone = row[3]
	}
	return c
}

// Window returns the sub-sequence of rows bounded by the 1-based start and
// end indices. Zero means unset: an unset start begins at the first row, an
// unset end runs to the last. end is a stop count, so Window(rows, 2, 5)
// yields rows 2 through 5 inclusive. Out-of-range bounds clamp instead of
// erroring: a start past the end yields an empty selection, an oversized end
// yields all remaining rows.
func Window(rows [][]string, start, end int) [][]string {
	lo := 0
	if start > 0 {
		lo = start - 1
	}
	if lo > len(rows) {
		lo = len(rows)
	}

	hi := len(rows)
	if end > 0 && end < hi {
		hi = end
	}
	if hi < lo {
		hi = lo
	}

	return rows[lo:hi]
}
