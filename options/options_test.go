package options

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, Snapshot{MaxHP: 5, BaseDamage: 1, CritDamage: 5, MusicVolume: 0.75, SFXVolume: 1}, d)
	assert.NoError(t, d.Validate())
}

func TestCycles(t *testing.T) {
	hp := []int{5}
	for i := 0; i < 4; i++ {
		hp = append(hp, NextMaxHP(hp[len(hp)-1]))
	}
	assert.Equal(t, []int{5, 10, 15, 20, 5}, hp)

	dmg := []int{1}
	for i := 0; i < 5; i++ {
		dmg = append(dmg, NextDamage(dmg[len(dmg)-1]))
	}
	assert.Equal(t, []int{1, 5, 10, 15, 20, 1}, dmg)

	vol := []float64{0}
	for i := 0; i < 5; i++ {
		vol = append(vol, NextVolume(vol[len(vol)-1]))
	}
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1, 0}, vol)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Snapshot)
	}{
		{"zero hp", func(s *Snapshot) { s.MaxHP = 0 }},
		{"negative damage", func(s *Snapshot) { s.BaseDamage = -1 }},
		{"negative crit", func(s *Snapshot) { s.CritDamage = -5 }},
		{"loud music", func(s *Snapshot) { s.MusicVolume = 1.5 }},
		{"negative sfx", func(s *Snapshot) { s.SFXVolume = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mod(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalid)
		})
	}
}

func TestStore_SubscribeAndReset(t *testing.T) {
	store, err := NewStore(Defaults())
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []Snapshot
	cancel := store.Subscribe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	})

	require.NoError(t, store.CycleMaxHP())
	require.NoError(t, store.CycleCritDamage())
	require.NoError(t, store.CycleSFXVolume())

	snap := store.Snapshot()
	assert.Equal(t, 10, snap.MaxHP)
	assert.Equal(t, 10, snap.CritDamage)
	assert.Equal(t, 0.0, snap.SFXVolume)

	require.NoError(t, store.ResetFightDefaults())
	snap = store.Snapshot()
	assert.Equal(t, 5, snap.MaxHP)
	assert.Equal(t, 5, snap.CritDamage)
	assert.Equal(t, 0.0, snap.SFXVolume, "volumes survive a fight reset")

	cancel()
	require.NoError(t, store.CycleBaseDamage())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 4)
}

func TestStore_RejectsInvalid(t *testing.T) {
	store, err := NewStore(Defaults())
	require.NoError(t, err)

	err = store.Update(func(s *Snapshot) { s.MaxHP = -1 })
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, Defaults(), store.Snapshot())

	_, err = NewStore(Snapshot{})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStore_ConcurrentUpdatesKeepEveryChange(t *testing.T) {
	store, err := NewStore(Defaults())
	require.NoError(t, err)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Update(func(s *Snapshot) { s.MaxHP++ }))
		}()
	}
	// A reload racing the updates replaces volumes only
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, store.Update(func(s *Snapshot) { s.MusicVolume = 0.25 }))
	}()
	wg.Wait()

	snap := store.Snapshot()
	assert.Equal(t, 5+writers, snap.MaxHP)
	assert.Equal(t, 0.25, snap.MusicVolume)
}

func TestSnapshotIsACopy(t *testing.T) {
	store, err := NewStore(Defaults())
	require.NoError(t, err)

	snap := store.Snapshot()
	snap.MaxHP = 20
	assert.Equal(t, 5, store.Snapshot().MaxHP)
}

func TestLoadFile(t *testing.T) {
	fsys := afero.NewMemMapFs()

	snap, err := LoadFile(fsys, "missing.toml")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), snap)

	require.NoError(t, afero.WriteFile(fsys, "opts.toml", []byte("max_hp = 15\nsfx_volume = 0.5\n"), 0o644))
	snap, err = LoadFile(fsys, "opts.toml")
	require.NoError(t, err)
	assert.Equal(t, 15, snap.MaxHP)
	assert.Equal(t, 0.5, snap.SFXVolume)
	assert.Equal(t, 1, snap.BaseDamage, "absent keys keep defaults")

	require.NoError(t, afero.WriteFile(fsys, "bad.toml", []byte("max_hp = 0\n"), 0o644))
	_, err = LoadFile(fsys, "bad.toml")
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, afero.WriteFile(fsys, "typo.toml", []byte("maxhp = 10\n"), 0o644))
	_, err = LoadFile(fsys, "typo.toml")
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_hp = 5\n"), 0o644))

	store, err := NewStore(Defaults())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, store, afero.NewOsFs(), path, nil) }()

	// Rewrite until the watcher has been registered and picked a write up
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("max_hp = 20\n"), 0o644)
		return store.Snapshot().MaxHP == 20
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
