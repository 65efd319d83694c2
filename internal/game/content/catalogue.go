package content

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/cory-johannsen/hexcombat/internal/game/combat"
)

// Catalogue holds every loaded card and item indexed by ID. It satisfies
// combat.CardCatalogue and combat.ItemCatalogue and is read-only once loaded.
type Catalogue struct {
	cards map[string]*combat.Card
	items map[string]*combat.Item
}

// NewCatalogue returns an empty Catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		cards: make(map[string]*combat.Card),
		items: make(map[string]*combat.Item),
	}
}

// AddCard registers c.
//
// Precondition: c must not be nil.
// Postcondition: Card(c.ID) returns c; returns an error if c.ID is already registered.
func (c *Catalogue) AddCard(card *combat.Card) error {
	if _, exists := c.cards[card.ID]; exists {
		return fmt.Errorf("content: card ID %q already registered", card.ID)
	}
	c.cards[card.ID] = card
	return nil
}

// AddItem registers item.
//
// Precondition: item must not be nil.
// Postcondition: Item(item.ID) returns item; returns an error if item.ID is already registered.
func (c *Catalogue) AddItem(item *combat.Item) error {
	if _, exists := c.items[item.ID]; exists {
		return fmt.Errorf("content: item ID %q already registered", item.ID)
	}
	c.items[item.ID] = item
	return nil
}

// Card implements combat.CardCatalogue.
func (c *Catalogue) Card(id string) (*combat.Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Item implements combat.ItemCatalogue.
func (c *Catalogue) Item(id string) (*combat.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// MustCard returns the card with id or panics. For wiring fixed content.
func (c *Catalogue) MustCard(id string) *combat.Card {
	card, ok := c.cards[id]
	if !ok {
		panic(fmt.Sprintf("content: unknown card %q", id))
	}
	return card
}

// MustItem returns the item with id or panics.
func (c *Catalogue) MustItem(id string) *combat.Item {
	item, ok := c.items[id]
	if !ok {
		panic(fmt.Sprintf("content: unknown item %q", id))
	}
	return item
}

// Cards returns every card sorted by ID.
func (c *Catalogue) Cards() []*combat.Card {
	return slices.SortedFunc(maps.Values(c.cards), func(a, b *combat.Card) int { return cmp.Compare(a.ID, b.ID) })
}

// Items returns every item sorted by ID.
func (c *Catalogue) Items() []*combat.Item {
	return slices.SortedFunc(maps.Values(c.items), func(a, b *combat.Item) int { return cmp.Compare(a.ID, b.ID) })
}

// Load reads cardsDir and itemsDir into a new Catalogue.
//
// Postcondition: Returns a catalogue holding every card and item, or the
// first load or duplicate-ID error.
func Load(cardsDir, itemsDir string) (*Catalogue, error) {
	cards, err := LoadCards(cardsDir)
	if err != nil {
		return nil, err
	}
	items, err := LoadItems(itemsDir)
	if err != nil {
		return nil, err
	}
	cat := NewCatalogue()
	for _, card := range cards {
		if err := cat.AddCard(card); err != nil {
			return nil, err
		}
	}
	for _, item := range items {
		if err := cat.AddItem(item); err != nil {
			return nil, err
		}
	}
	return cat, nil
}
