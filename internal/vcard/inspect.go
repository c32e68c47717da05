package vcard

import (
	"errors"
	"fmt"
	"io"

	govcard "github.com/emersion/go-vcard"
)

// ErrNoCards indicates the input contained no vCard blocks.
var ErrNoCards = errors.New("vcard: no cards found")

// CardSummary holds the display fields of one decoded vCard.
type CardSummary struct {
	FormattedName string
	Email         string
	Telephone     string
}

// DecodeAll reads every vCard block from r and returns a summary per card.
// Decoding stops at the first malformed block.
func DecodeAll(r io.Reader) ([]CardSummary, error) {
	dec := govcard.NewDecoder(r)

	var cards []CardSummary
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vcard: decoding card %d: %w", len(cards)+1, err)
		}
		cards = append(cards, CardSummary{
			FormattedName: card.Value(govcard.FieldFormattedName),
			Email:         card.Value(govcard.FieldEmail),
			Telephone:     card.Value(govcard.FieldTelephone),
		})
	}

	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return cards, nil
}
