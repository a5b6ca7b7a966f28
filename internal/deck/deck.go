// Package deck loads study decks from YAML, JSON and spreadsheet files.
package deck

import (
	"errors"
	"fmt"
)

// ErrInvalidDeck is returned when a deck file fails validation.
var ErrInvalidDeck = errors.New("deck: invalid deck")

// Item is a single thing to learn. ID and Answer are required.
type Item struct {
	ID     string `json:"id" yaml:"id"`
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Answer string `json:"answer" yaml:"answer"`
}

// Question returns the text shown to the learner, falling back to the ID.
func (i Item) Question() string {
	if i.Prompt != "" {
		return i.Prompt
	}
	return i.ID
}

// Deck is an ordered collection of items studied together.
type Deck struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	OwnerID string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Items   []Item `json:"items" yaml:"items"`

	// Source is the file the deck was loaded from.
	Source string `json:"-" yaml:"-"`
}

// ItemIDs returns item IDs in deck order.
func (d *Deck) ItemIDs() []string {
	ids := make([]string, len(d.Items))
	for i, it := range d.Items {
		ids[i] = it.ID
	}
	return ids
}

// Answers returns every item's answer in deck order.
func (d *Deck) Answers() []string {
	out := make([]string, len(d.Items))
	for i, it := range d.Items {
		out[i] = it.Answer
	}
	return out
}

// Item looks up an item by ID.
func (d *Deck) Item(id string) (Item, bool) {
	for _, it := range d.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Validate checks the structural rules the schema cannot express.
func (d *Deck) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing deck id", ErrInvalidDeck)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: deck %q has no items", ErrInvalidDeck, d.ID)
	}
	seen := make(map[string]bool, len(d.Items))
	for i, it := range d.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidDeck, i+1)
		}
		if it.Answer == "" {
			return fmt.Errorf("%w: item %q has no answer", ErrInvalidDeck, it.ID)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidDeck, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
