package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eringen/folio/kv"
)

// DefaultKey is the storage key holding the serialized SiteContent.
const DefaultKey = "portfolio_content"

// Storage is the durable record the Store reads and writes. kv.Store
// satisfies it.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store owns the canonical SiteContent. It is loaded once with Load and
// written through on every Update. Mutations are serialized, so writes reach
// storage in the order they were applied.
//
// Two processes sharing one storage key race with last-write-wins semantics.
type Store struct {
	storage Storage
	key     string
	log     *slog.Logger

	mu      sync.Mutex
	current SiteContent
	subs    map[int]func(SiteContent)
	nextSub int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the storage key (default DefaultKey).
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore returns a Store backed by storage. Its value is the built-in
// default until Load is called.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		log:     slog.Default(),
		current: Default(),
		subs:    make(map[int]func(SiteContent)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted value, merges it over the defaults and makes it
// the current value. Read and decode failures fall back to the defaults;
// Load never fails.
func (s *Store) Load(ctx context.Context) SiteContent {
	c := s.read(ctx)

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return c.Clone()
}

func (s *Store) read(ctx context.Context) SiteContent {
	raw, err := s.storage.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		if c, ok := s.migrateLegacy(ctx); ok {
			return c
		}
		return Default()
	case err != nil:
		s.log.Warn("content: read failed, using defaults", "key", s.key, "error", err)
		return Default()
	}
	c, err := Decode(raw)
	if err != nil {
		s.log.Warn("content: stored value is not decodable, using defaults", "key", s.key, "error", err)
		return Default()
	}
	return c
}

// Decode parses a serialized SiteContent over the defaults. Fields missing
// from raw keep their default value; a missing or null updates list is
// replaced by the default list.
func Decode(raw []byte) (SiteContent, error) {
	c := Default()
	c.Updates = nil
	if err := json.Unmarshal(raw, &c); err != nil {
		return SiteContent{}, fmt.Errorf("decode content: %w", err)
	}
	if c.Updates == nil {
		c.Updates = DefaultUpdates()
	}
	return c, nil
}

// Encode serializes c in the persisted shape.
func Encode(c SiteContent) ([]byte, error) {
	if c.Updates == nil {
		c.Updates = []UpdateItem{}
	}
	return json.Marshal(c)
}

// Current returns a copy of the current value.
func (s *Store) Current() SiteContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update merges p into the current value, persists the result and notifies
// subscribers. If the write fails the current value is left unchanged.
func (s *Store) Update(ctx context.Context, p Patch) (SiteContent, error) {
	return s.modify(ctx, func(SiteContent) (Patch, bool) { return p, true })
}

// modify runs fn on the current value under the store lock. When fn reports
// a change, the patch it returns is applied and persisted.
func (s *Store) modify(ctx context.Context, fn func(SiteContent) (Patch, bool)) (SiteContent, error) {
	s.mu.Lock()
	p, changed := fn(s.current.Clone())
	if !changed {
		c := s.current.Clone()
		s.mu.Unlock()
		return c, nil
	}
	next := p.Apply(s.current)
	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		return s.Current(), err
	}
	s.current = next
	subs := make([]func(SiteContent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.Clone())
	}
	return next.Clone(), nil
}

// Replace persists c wholesale, as an import does.
func (s *Store) Replace(ctx context.Context, c SiteContent) (SiteContent, error) {
	return s.modify(ctx, func(SiteContent) (Patch, bool) {
		h, a := c.Hero, c.About
		updates := c.Updates
		if updates == nil {
			updates = []UpdateItem{}
		}
		return Patch{
			Hero:    &HeroPatch{Badge: &h.Badge, Title: &h.Title, Description: &h.Description},
			About:   &AboutPatch{MainTitle: &a.MainTitle, SubTitle: &a.SubTitle, Desc1: &a.Desc1, Desc2: &a.Desc2, ProfileImage: &a.ProfileImage},
			Updates: updates,
		}, true
	})
}

func (s *Store) persist(ctx context.Context, c SiteContent) error {
	raw, err := Encode(c)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist content: %w", err)
	}
	return nil
}

// Subscribe registers fn to receive every new value after a successful
// update. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(SiteContent)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
