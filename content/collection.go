package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrRejectedReorder is returned when a new order is not a permutation of the
// current item ids.
var ErrRejectedReorder = errors.New("content: reorder rejected")

// ItemField names an editable field of UpdateItem.
type ItemField string

const (
	ItemTitle       ItemField = "title"
	ItemDate        ItemField = "date"
	ItemDescription ItemField = "description"
	ItemImage       ItemField = "image"
)

// ParseItemField validates a field name coming from a request.
func ParseItemField(s string) (ItemField, error) {
	switch f := ItemField(s); f {
	case ItemTitle, ItemDate, ItemDescription, ItemImage:
		return f, nil
	}
	return "", fmt.Errorf("%w: item field %q", ErrUnknownField, s)
}

// NewItem returns the placeholder item added by the editor, dated now.
func NewItem(id int64, now time.Time) UpdateItem {
	return UpdateItem{
		ID:          id,
		Title:       PlaceholderTitle,
		Date:        now.Format("2006.01.02"),
		Description: PlaceholderDescription,
		Image:       PlaceholderImage,
	}
}

// AddItem returns items with it placed first.
func AddItem(items []UpdateItem, it UpdateItem) []UpdateItem {
	out := make([]UpdateItem, 0, len(items)+1)
	out = append(out, it)
	return append(out, items...)
}

// EditItem returns items with one field of the item with id replaced. When
// no item has that id, items is returned unchanged with found == false.
func EditItem(items []UpdateItem, id int64, field ItemField, value string) (out []UpdateItem, found bool) {
	i := indexOf(items, id)
	if i < 0 {
		return items, false
	}
	out = make([]UpdateItem, len(items))
	copy(out, items)
	switch field {
	case ItemTitle:
		out[i].Title = value
	case ItemDate:
		out[i].Date = value
	case ItemDescription:
		out[i].Description = value
	case ItemImage:
		out[i].Image = value
	default:
		return items, false
	}
	return out, true
}

// DeleteItem returns items without the item with id, keeping the order of
// the rest. A missing id is a no-op.
func DeleteItem(items []UpdateItem, id int64) (out []UpdateItem, found bool) {
	i := indexOf(items, id)
	if i < 0 {
		return items, false
	}
	out = make([]UpdateItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}

// Reorder returns items arranged in the order given by ids. ids must contain
// every current id exactly once; otherwise ErrRejectedReorder is returned
// and items is left as is.
func Reorder(items []UpdateItem, ids []int64) ([]UpdateItem, error) {
	if len(ids) != len(items) {
		return items, fmt.Errorf("%w: got %d ids for %d items", ErrRejectedReorder, len(ids), len(items))
	}
	byID := make(map[int64]UpdateItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]UpdateItem, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return items, fmt.Errorf("%w: id %d missing or repeated", ErrRejectedReorder, id)
		}
		delete(byID, id)
		out = append(out, it)
	}
	return out, nil
}

// Move returns the id order after shifting the item with id by delta
// positions, clamped to the ends of the list. It feeds Reorder from simple
// up/down controls.
func Move(items []UpdateItem, id int64, delta int) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	from := indexOf(items, id)
	if from < 0 {
		return ids
	}
	if delta > len(ids) {
		delta = len(ids)
	}
	if delta < -len(ids) {
		delta = -len(ids)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(ids)-1 {
		to = len(ids) - 1
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]int64{moved}, ids[to:]...)...)
	return ids
}

func indexOf(items []UpdateItem, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// IDSource issues item ids from the clock in milliseconds. An id never
// repeats one it issued before or one already present in the list.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDSource returns an IDSource reading the given clock; nil means
// time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next returns a fresh id that is distinct from every id in existing.
func (s *IDSource) Next(existing []UpdateItem) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	floor := s.last
	for _, it := range existing {
		if it.ID > floor {
			floor = it.ID
		}
	}
	id := s.now().UnixMilli()
	if id <= floor {
		id = floor + 1
	}
	s.last = id
	return id
}

// Updates edits the updates collection of a Store. Every call is one
// read-modify-write followed by an immediate persist.
type Updates struct {
	store *Store
	ids   *IDSource
	now   func() time.Time
}

// NewUpdates binds a collection editor to store. now may be nil.
func NewUpdates(store *Store, now func() time.Time) *Updates {
	if now == nil {
		now = time.Now
	}
	return &Updates{store: store, ids: NewIDSource(now), now: now}
}

// Add prepends a placeholder item and returns it.
func (u *Updates) Add(ctx context.Context) (UpdateItem, SiteContent, error) {
	var added UpdateItem
	c, err := u.store.modify(ctx, func(c SiteContent) (Patch, bool) {
		added = NewItem(u.ids.Next(c.Updates), u.now())
		return Patch{Updates: AddItem(c.Updates, added)}, true
	})
	return added, c, err
}

// Edit replaces one field of the item with id. Unknown ids are a no-op.
func (u *Updates) Edit(ctx context.Context, id int64, field ItemField, value string) (SiteContent, bool, error) {
	var found bool
	c, err := u.store.modify(ctx, func(c SiteContent) (Patch, bool) {
		var items []UpdateItem
		items, found = EditItem(c.Updates, id, field, value)
		return Patch{Updates: items}, found
	})
	return c, found, err
}

// Delete removes the item with id. Unknown ids are a no-op.
func (u *Updates) Delete(ctx context.Context, id int64) (SiteContent, bool, error) {
	var found bool
	c, err := u.store.modify(ctx, func(c SiteContent) (Patch, bool) {
		var items []UpdateItem
		items, found = DeleteItem(c.Updates, id)
		return Patch{Updates: items}, found
	})
	return c, found, err
}

// Reorder arranges the collection in the order of ids. See the package
// function Reorder for the acceptance rule.
func (u *Updates) Reorder(ctx context.Context, ids []int64) (SiteContent, error) {
	var rerr error
	c, err := u.store.modify(ctx, func(c SiteContent) (Patch, bool) {
		var items []UpdateItem
		items, rerr = Reorder(c.Updates, ids)
		return Patch{Updates: items}, rerr == nil
	})
	if rerr != nil {
		return c, rerr
	}
	return c, err
}
