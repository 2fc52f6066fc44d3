package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/kv"
)

// failingStorage rejects every write after the first n.
type failingStorage struct {
	*kv.Memory
	writesLeft int
}

var errDiskFull = errors.New("disk full")

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.writesLeft <= 0 {
		return errDiskFull
	}
	f.writesLeft--
	return f.Memory.Set(ctx, key, value)
}

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return NewStore(mem), mem
}

func TestLoadWithoutPersistedValueReturnsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	got := s.Load(context.Background())
	assert.Equal(t, Default(), got)
	assert.Len(t, got.Updates, 5)
}

func TestLoadUnparseableValueFallsBackToDefaults(t *testing.T) {
	for name, raw := range map[string]string{
		"truncated":  `{"hero": {"badge": "x"`,
		"wrong type": `{"hero": "not an object"}`,
		"not json":   `<html>`,
	} {
		t.Run(name, func(t *testing.T) {
			s, mem := newTestStore(t)
			require.NoError(t, mem.Set(context.Background(), DefaultKey, []byte(raw)))
			assert.Equal(t, Default(), s.Load(context.Background()))
		})
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	raw := `{"hero":{"badge":"Custom badge"},"about":{"desc2":"Custom desc2","profileImage":"data:image/png;base64,AAAA"}}`
	require.NoError(t, mem.Set(ctx, DefaultKey, []byte(raw)))

	got := s.Load(ctx)
	def := Default()

	assert.Equal(t, "Custom badge", got.Hero.Badge)
	assert.Equal(t, def.Hero.Title, got.Hero.Title)
	assert.Equal(t, def.Hero.Description, got.Hero.Description)
	assert.Equal(t, def.About.MainTitle, got.About.MainTitle)
	assert.Equal(t, "Custom desc2", got.About.Desc2)
	assert.Equal(t, "data:image/png;base64,AAAA", got.About.ProfileImage)
	assert.Equal(t, def.Updates, got.Updates, "missing updates must be backfilled")
}

func TestLoadNullUpdatesBackfilled(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, DefaultKey, []byte(`{"updates":null}`)))
	assert.Equal(t, DefaultUpdates(), s.Load(ctx).Updates)
}

func TestLoadKeepsEmptyUpdates(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, DefaultKey, []byte(`{"updates":[]}`)))
	got := s.Load(ctx)
	assert.NotNil(t, got.Updates)
	assert.Empty(t, got.Updates)
}

func TestPersistedUpdateItemsDoNotInheritDefaultFields(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, DefaultKey, []byte(`{"updates":[{"id":42,"title":"only title"}]}`)))
	got := s.Load(ctx)
	require.Len(t, got.Updates, 1)
	assert.Equal(t, UpdateItem{ID: 42, Title: "only title"}, got.Updates[0])
}

func TestRoundTrip(t *testing.T) {
	values := []SiteContent{
		Default(),
		{
			Hero:    Hero{Badge: "b", Title: "line 1\nline 2", Description: "d"},
			About:   About{MainTitle: "m", SubTitle: "s", Desc1: "1", Desc2: "2", ProfileImage: "data:image/jpeg;base64,/9j/"},
			Updates: []UpdateItem{{ID: 1700000000000, Title: "t", Date: "어제", Description: "x", Image: "https://example.com/a.jpg"}},
		},
		{Hero: Hero{}, About: About{}, Updates: []UpdateItem{}},
	}
	for i, v := range values {
		mem := kv.NewMemory()
		s := NewStore(mem)
		ctx := context.Background()
		_, err := s.Replace(ctx, v)
		require.NoError(t, err, "case %d", i)

		reloaded := NewStore(mem).Load(ctx)
		assert.Equal(t, v, reloaded, "case %d", i)
	}
}

func TestUpdateIsolation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	before := s.Load(ctx)

	p, err := FieldPatch("hero.badge", "X")
	require.NoError(t, err)
	after, err := s.Update(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, "X", after.Hero.Badge)
	assert.Equal(t, before.Hero.Title, after.Hero.Title)
	assert.Equal(t, before.Hero.Description, after.Hero.Description)
	assert.Equal(t, before.About, after.About)
	assert.Equal(t, before.Updates, after.Updates)
}

func TestUpdatePersistsImmediately(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	s.Load(ctx)

	p, err := FieldPatch("about.desc1", "written through")
	require.NoError(t, err)
	_, err = s.Update(ctx, p)
	require.NoError(t, err)

	raw, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err)
	c, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "written through", c.About.Desc1)
}

func TestUpdateFailureKeepsPreviousValue(t *testing.T) {
	storage := &failingStorage{Memory: kv.NewMemory()}
	s := NewStore(storage)
	ctx := context.Background()
	before := s.Load(ctx)

	p, _ := FieldPatch("hero.title", "never stored")
	_, err := s.Update(ctx, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDiskFull))
	assert.Equal(t, before, s.Current())
}

func TestUpdateBroadcastsToSubscribers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Load(ctx)

	var seen []string
	cancel := s.Subscribe(func(c SiteContent) { seen = append(seen, c.Hero.Badge) })

	p, _ := FieldPatch("hero.badge", "one")
	_, err := s.Update(ctx, p)
	require.NoError(t, err)

	cancel()
	p, _ = FieldPatch("hero.badge", "two")
	_, err = s.Update(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"one"}, seen)
}

func TestCurrentReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	c := s.Load(context.Background())
	c.Updates[0].Title = "mutated outside"
	assert.NotEqual(t, "mutated outside", s.Current().Updates[0].Title)
}

func TestProfileImageOnlyReplacedByExplicitEdit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Load(ctx)

	img, _ := FieldPatch("about.profileImage", "data:image/jpeg;base64,AAA")
	_, err := s.Update(ctx, img)
	require.NoError(t, err)

	other, _ := FieldPatch("about.desc1", "something else")
	got, err := s.Update(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AAA", got.About.ProfileImage)
}

func TestFieldPatchUnknownKey(t *testing.T) {
	_, err := FieldPatch("hero.subtitle", "x")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestFieldsPatch(t *testing.T) {
	p, err := FieldsPatch(map[string]string{"hero.title": "T", "about.desc2": "D"})
	require.NoError(t, err)
	got := p.Apply(Default())
	assert.Equal(t, "T", got.Hero.Title)
	assert.Equal(t, "D", got.About.Desc2)
	assert.Equal(t, Default().Hero.Badge, got.Hero.Badge)

	_, err = FieldsPatch(map[string]string{"hero.title": "T", "bogus": "x"})
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestMigrateLegacyRecord(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	legacy := `{"name":"Storyhacker","heroTitle":"옛 제목","heroSubtitle":"옛 부제","aboutTitle":"옛 소개","aboutDesc1":"하나","aboutDesc2":"둘","aboutDesc3":"","profileImage":"data:image/png;base64,OLD"}`
	require.NoError(t, mem.Set(ctx, LegacyKey, []byte(legacy)))

	got := s.Load(ctx)
	assert.Equal(t, "옛 제목", got.Hero.Title)
	assert.Equal(t, "옛 부제", got.Hero.Description)
	assert.Equal(t, "옛 소개", got.About.SubTitle)
	assert.Equal(t, "하나", got.About.Desc1)
	assert.Equal(t, "둘", got.About.Desc2)
	assert.Equal(t, "data:image/png;base64,OLD", got.About.ProfileImage)
	assert.Equal(t, Default().Hero.Badge, got.Hero.Badge)
	assert.Equal(t, DefaultUpdates(), got.Updates)

	raw, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err, "migration must write the new key")
	migrated, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, got, migrated)
}

func TestMigrateLegacyImageOnly(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, LegacyImageKey, []byte("data:image/png;base64,IMG")))

	got := s.Load(ctx)
	assert.Equal(t, "data:image/png;base64,IMG", got.About.ProfileImage)
	assert.Equal(t, Default().Hero, got.Hero)
}

func TestCurrentKeyWinsOverLegacy(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, LegacyKey, []byte(`{"heroTitle":"legacy"}`)))
	require.NoError(t, mem.Set(ctx, DefaultKey, []byte(`{"hero":{"title":"current"}}`)))
	assert.Equal(t, "current", s.Load(ctx).Hero.Title)
}

func TestWithKey(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "other", []byte(`{"hero":{"badge":"other key"}}`)))
	s := NewStore(mem, WithKey("other"))
	assert.Equal(t, "other key", s.Load(ctx).Hero.Badge)
}

// Two stores sharing one record do not see each other's writes. The later
// write replaces the whole record, so the earlier store's edit is lost.
func TestSharedRecordIsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	a, b := NewStore(mem), NewStore(mem)
	a.Load(ctx)
	b.Load(ctx)

	_, err := a.Update(ctx, mustFieldPatch(t, "hero.badge", "from A"))
	require.NoError(t, err)
	_, err = b.Update(ctx, mustFieldPatch(t, "hero.title", "from B"))
	require.NoError(t, err)

	got := NewStore(mem).Load(ctx)
	assert.Equal(t, "from B", got.Hero.Title)
	assert.Equal(t, Default().Hero.Badge, got.Hero.Badge, "A's edit is overwritten by B's stale copy")
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	s.Load(ctx)
	u := NewUpdates(s, time.Now)

	const writers = 20
	patches := make([]Patch, writers)
	for i := range patches {
		patches[i] = mustFieldPatch(t, "about.desc1", fmt.Sprintf("edit %d", i))
	}
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(ctx, patches[i])
			assert.NoError(t, err)
			_, _, err = u.Add(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	cur := s.Current()
	assert.Len(t, cur.Updates, len(DefaultUpdates())+writers, "no add may be lost")
	seen := make(map[int64]bool)
	for _, it := range cur.Updates {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}

	raw, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err)
	stored, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, cur, stored, "the last persisted write is the current value")
}

func mustFieldPatch(t *testing.T, key, value string) Patch {
	t.Helper()
	p, err := FieldPatch(key, value)
	require.NoError(t, err)
	return p
}

func TestTextFieldPatchRejectsProfileImage(t *testing.T) {
	_, err := TextFieldPatch(ProfileImageKey, "https://example.com/a.png")
	assert.True(t, errors.Is(err, ErrUnknownField))

	p, err := TextFieldPatch("hero.badge", "b")
	require.NoError(t, err)
	assert.Equal(t, "b", p.Apply(Default()).Hero.Badge)
}
