package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blaze-and-steel/assets"
	"blaze-and-steel/internal/component"
	"blaze-and-steel/internal/save"
	"blaze-and-steel/internal/system"
)

const testKey = "blazeAndSteelSave"

// scriptedRand replays fixed values, then falls back to "no crit, no drop,
// first monster".
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// flakyStore wraps a MemStore and fails every call while broken is set.
type flakyStore struct {
	*save.MemStore
	broken bool
}

var errBroken = errors.New("store offline")

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.broken {
		return "", false, errBroken
	}
	return s.MemStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.broken {
		return errBroken
	}
	return s.MemStore.Set(ctx, key, value)
}

func (s *flakyStore) Remove(ctx context.Context, key string) error {
	if s.broken {
		return errBroken
	}
	return s.MemStore.Remove(ctx, key)
}

type fixture struct {
	g     *Game
	store *flakyStore
	rng   *scriptedRand
}

func newFixture(t *testing.T, cancelStale bool) *fixture {
	t.Helper()
	store := &flakyStore{MemStore: save.NewMemStore()}
	rng := &scriptedRand{}
	g := New(Options{
		Saves:                save.NewGateway(store, testKey),
		Rand:                 rng,
		CancelStaleCallbacks: cancelStale,
		Now:                  func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	return &fixture{g: g, store: store, rng: rng}
}

// playing returns a fixture with a freshly created mage (no class bonuses).
func playing(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t, true)
	f.g.NewGame()
	require.NoError(t, f.g.CreateCharacter("Rook", "mage"))
	return f
}

func (f *fixture) stored(t *testing.T) (save.Snapshot, bool) {
	t.Helper()
	blob, ok, err := f.store.MemStore.Get(context.Background(), testKey)
	require.NoError(t, err)
	if !ok {
		return save.Snapshot{}, false
	}
	snap, err := save.Decode(blob)
	require.NoError(t, err)
	return snap, true
}

func lastMessage(g *Game) string {
	msgs := g.Messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Text
}

func assertTotalsFresh(t *testing.T, g *Game) {
	t.Helper()
	assert.Equal(t, system.EquipmentTotals(g.equipment), g.totals, "cached totals drifted")
}

func TestNewStartsAtMenuWithDefaults(t *testing.T) {
	f := newFixture(t, true)
	assert.Equal(t, PhaseMenu, f.g.Phase())
	assert.Equal(t, component.NewHero(), f.g.Hero())
	assert.Equal(t, map[string]int{assets.MissionResource: 0, assets.MissionDaily: 0}, f.g.Cooldowns())
	assert.False(t, f.g.InCombat())
}

func TestCreateCharacterAppliesClassBonuses(t *testing.T) {
	cases := []struct {
		class                  string
		hp, atk, def, dex, crt int
	}{
		{"warrior", 120, 12, 8, 1, 5},
		{"mage", 100, 10, 5, 1, 5},
		{"archer", 100, 13, 6, 3, 5},
		{"assassin", 100, 14, 5, 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.class, func(t *testing.T) {
			f := newFixture(t, true)
			f.g.NewGame()
			require.NoError(t, f.g.CreateCharacter("Rook", tc.class))

			h := f.g.Hero()
			assert.Equal(t, tc.hp, h.BaseHP)
			assert.Equal(t, tc.atk, h.BaseAttack)
			assert.Equal(t, tc.def, h.BaseDefense)
			assert.Equal(t, tc.dex, h.BaseDexterity)
			assert.Equal(t, tc.crt, h.CritChance)
			assert.Equal(t, f.g.MaxHP(), h.CurrentHP)

			// Starter weapon adds +2 attack on top of the base.
			assert.Equal(t, tc.atk+2, f.g.TotalStat(component.StatAttack))
			assert.Empty(t, f.g.Inventory())
			assert.Equal(t, PhasePlaying, f.g.Phase())
			assertTotalsFresh(t, f.g)

			class, _ := assets.ClassByID(tc.class)
			assert.Equal(t, class.Name, h.ClassName)
			snap, ok := f.stored(t)
			require.True(t, ok, "character creation should save")
			assert.Equal(t, "Rook", snap.Hero.Name)
			require.NotNil(t, snap.Equipment["weapon"].CurrentItem)
			assert.Equal(t, assets.StarterWeapon.ID, snap.Equipment["weapon"].CurrentItem.ID)
		})
	}
}

func TestCreateCharacterValidation(t *testing.T) {
	f := newFixture(t, true)
	err := f.g.CreateCharacter("Rook", "mage")
	assert.ErrorIs(t, err, ErrInvalidAction, "creation outside the creation phase")

	f.g.NewGame()
	assert.ErrorIs(t, f.g.CreateCharacter("Rook", "bard"), ErrInvalidAction)
	assert.ErrorIs(t, f.g.CreateCharacter("R", "mage"), ErrInvalidAction)
	assert.Equal(t, PhaseCreation, f.g.Phase())

	require.NoError(t, f.g.CreateCharacter("   ", "mage"))
	assert.Equal(t, DefaultHeroName, f.g.Hero().Name)
}

func TestNewGameDiscardsSoul(t *testing.T) {
	f := playing(t)
	f.g.hero.BaseSoul = 4
	f.g.NewGame()
	assert.Equal(t, 0, f.g.Hero().BaseSoul)
	assert.Equal(t, PhaseCreation, f.g.Phase())
}

func TestMessagesAreCapped(t *testing.T) {
	f := newFixture(t, true)
	for i := 0; i < 80; i++ {
		f.g.addMessage("line", component.ToneText)
	}
	f.g.addMessage("newest", component.ToneText)
	msgs := f.g.Messages()
	assert.Len(t, msgs, maxMessages)
	assert.Equal(t, "newest", msgs[len(msgs)-1].Text)
}

func TestWriteFailureKeepsPlayingWithOneNotice(t *testing.T) {
	f := playing(t)
	f.store.broken = true

	f.g.AddItem(assets.MonsterEssence)
	f.g.AddItem(assets.MonsterEssence)
	f.g.Advance(3 * time.Second)

	assert.Len(t, f.g.Inventory(), 2, "in-memory state stays authoritative")
	notices := 0
	for _, m := range f.g.Messages() {
		if strings.HasPrefix(m.Text, "Save failed") {
			notices++
		}
	}
	assert.Equal(t, 1, notices)

	err := f.g.Save()
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, save.ErrStore)

	f.store.broken = false
	require.NoError(t, f.g.Save())
	snap, ok := f.stored(t)
	require.True(t, ok)
	assert.Len(t, snap.Inventory, 2)
}

func TestSaveWithoutStore(t *testing.T) {
	g := New(Options{})
	assert.ErrorIs(t, g.Save(), ErrPersistence)
	ok, err := g.Load()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	f := playing(t)
	armor := component.Item{ID: 300, Name: "Leather Vest", Type: "armor", Stat: map[component.Bonus]int{component.BonusHP: 20, component.BonusDefense: 2}}
	f.g.AddItem(armor)
	require.NoError(t, f.g.EquipItem(armor))
	f.g.AddItem(assets.MonsterEssence)
	require.NoError(t, f.g.StartMission(assets.MissionResource))
	f.g.Advance(5 * time.Second)
	want := f.g.Hero()

	g2 := New(Options{Saves: save.NewGateway(f.store, testKey), Rand: &scriptedRand{}, CancelStaleCallbacks: true})
	ok, err := g2.Load()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, PhasePlaying, g2.Phase())
	assert.Equal(t, want, g2.Hero())
	assert.Equal(t, f.g.Totals(), g2.Totals())
	assert.Equal(t, f.g.Stacks(), g2.Stacks())
	assert.Equal(t, 25, g2.Cooldowns()[assets.MissionResource])
	assertTotalsFresh(t, g2)

	// The tick resumes after loading.
	g2.Advance(5 * time.Second)
	assert.Equal(t, 20, g2.Cooldowns()[assets.MissionResource])
}

func TestLoadRepairsDamagedSnapshot(t *testing.T) {
	f := newFixture(t, true)
	h := component.NewHero()
	h.Name = "Rook"
	h.CurrentHP = 999
	h.AttributePoints = -3
	vest := component.Item{ID: 300, Name: "Vest", Type: "armor"}
	ring := component.Item{ID: 301, Name: "Ring", Type: "ring"}
	blade := component.Item{ID: 100, Name: "Blade", Type: "weapon", Stat: map[component.Bonus]int{component.BonusAttack: 2}}
	snap := save.Snapshot{
		Hero: h,
		Equipment: map[string]save.SlotRecord{
			"weapon":    {Name: "Wrong", CurrentItem: &vest},
			"ring":      {Name: "Ring", CurrentItem: &ring},
			"accessory": {Name: "Accessory"},
		},
		Inventory:        component.Inventory{blade},
		MissionCooldowns: map[string]int{assets.MissionResource: -5},
	}
	gw := save.NewGateway(f.store, testKey)
	require.NoError(t, gw.Save(context.Background(), snap))

	ok, err := f.g.Load()
	require.NoError(t, err)
	require.True(t, ok)

	for _, s := range f.g.Slots() {
		assert.True(t, s.IsEmpty(), "slot %s should be empty", s.Key)
		def := assets.Slots[slotIndex(s.Key)]
		assert.Equal(t, def.Name, s.Name, "slot metadata comes from assets")
	}
	inv := f.g.Inventory()
	require.Len(t, inv, 3)
	assert.Equal(t, 100, inv[0].ID)
	assert.Equal(t, 301, inv[1].ID, "mismatched items return in slot key order")
	assert.Equal(t, 300, inv[2].ID)

	assert.Equal(t, 0, f.g.Cooldowns()[assets.MissionResource])
	assert.Equal(t, 0, f.g.Cooldowns()[assets.MissionDaily])
	assert.Equal(t, f.g.MaxHP(), f.g.Hero().CurrentHP)
	assert.Equal(t, 0, f.g.Hero().AttributePoints)
}

func slotIndex(key string) int {
	for i, s := range assets.Slots {
		if s.Key == key {
			return i
		}
	}
	return -1
}

func TestLoadMissingOrCorruptIsNoSave(t *testing.T) {
	f := newFixture(t, true)
	ok, err := f.g.Load()
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, "No save found.", lastMessage(f.g))

	require.NoError(t, f.store.MemStore.Set(context.Background(), testKey, "{not json"))
	ok, err = f.g.Load()
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, PhaseMenu, f.g.Phase())
}

func TestLoadStoreErrorIsPersistenceError(t *testing.T) {
	f := newFixture(t, true)
	f.store.broken = true
	ok, err := f.g.Load()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestResetClearsSaveAndReturnsToMenu(t *testing.T) {
	f := playing(t)
	require.NoError(t, f.g.Reset())
	_, ok := f.stored(t)
	assert.False(t, ok)
	assert.Equal(t, PhaseMenu, f.g.Phase())
	assert.Equal(t, component.NewHero(), f.g.Hero())

	// No tick survives the reset.
	f.g.Advance(10 * time.Second)
	_, ok = f.stored(t)
	assert.False(t, ok)
}

// cancelAwareStore fails writes made under a cancelled context, as a SQL
// driver does.
type cancelAwareStore struct {
	*save.MemStore
}

func (s cancelAwareStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemStore.Set(ctx, key, value)
}

func TestWritesLandAfterSessionCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := cancelAwareStore{MemStore: save.NewMemStore()}
	g := New(Options{
		Context: ctx,
		Saves:   save.NewGateway(store, testKey),
		Rand:    &scriptedRand{},
	})
	g.NewGame()
	require.NoError(t, g.CreateCharacter("Rook", "mage"))

	cancel()
	g.AddItem(assets.MonsterEssence)
	require.NoError(t, g.Save())

	blob, ok, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.True(t, ok)
	snap, err := save.Decode(blob)
	require.NoError(t, err)
	assert.Len(t, snap.Inventory, 1)
	for _, m := range g.Messages() {
		assert.NotContains(t, m.Text, "Save failed")
	}
}
