// Package model contains the persisted outline document
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeItem  = "item"
	TypeGroup = "group"
)

// Item represents a single node in the outline tree
type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type,omitempty"` // "item" or "group"; inferred from Children when empty
	Collapsed bool      `json:"collapsed,omitempty"`
	Children  []*Item   `json:"children,omitempty"`
	Modified  time.Time `json:"modified"`
	Parent    *Item     `json:"-"` // Not persisted
}

// Outline represents the entire outline document
type Outline struct {
	Title string  `json:"title"`
	Items []*Item `json:"items"`
}

// NewItem creates a new leaf item with a generated ID
func NewItem(text string) *Item {
	return &Item{
		ID:       uuid.NewString(),
		Text:     text,
		Type:     TypeItem,
		Modified: time.Now(),
	}
}

// NewGroup creates a new, empty group item
func NewGroup(text string) *Item {
	item := NewItem(text)
	item.Type = TypeGroup
	item.Children = make([]*Item, 0)
	return item
}

// NewOutline creates a new outline with the given title
func NewOutline(title string) *Outline {
	return &Outline{
		Title: title,
		Items: make([]*Item, 0),
	}
}

// IsGroup reports whether the item should be shown as a group
func (i *Item) IsGroup() bool {
	if i.Type != "" {
		return i.Type == TypeGroup
	}
	return len(i.Children) > 0
}

// Kind returns the item's type, inferring it for documents written without one
func (i *Item) Kind() string {
	if i.IsGroup() {
		return TypeGroup
	}
	return TypeItem
}

// AddChild adds a child item to this item
func (i *Item) AddChild(child *Item) {
	child.Parent = i
	i.Type = TypeGroup
	i.Children = append(i.Children, child)
}

// GetAllItems returns all items in the outline (depth-first)
func (o *Outline) GetAllItems() []*Item {
	var items []*Item
	for _, item := range o.Items {
		items = append(items, getAllItemsRecursive(item)...)
	}
	return items
}

func getAllItemsRecursive(item *Item) []*Item {
	items := []*Item{item}
	for _, child := range item.Children {
		items = append(items, getAllItemsRecursive(child)...)
	}
	return items
}

// FindItemByID finds an item by its ID in the outline
func (o *Outline) FindItemByID(id string) *Item {
	for _, item := range o.GetAllItems() {
		if item.ID == id {
			return item
		}
	}
	return nil
}
