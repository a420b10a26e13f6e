package options

import (
	"sync"
)

// Store owns the current snapshot and notifies subscribers of changes
type Store struct {
	mu      sync.Mutex
	current Snapshot
	nextID  int
	subs    map[int]func(Snapshot)
}

// NewStore creates a store holding initial, which must be valid
func NewStore(initial Snapshot) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		current: initial,
		subs:    make(map[int]func(Snapshot)),
	}, nil
}

// Snapshot returns the current options
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set replaces the options; invalid snapshots are rejected and leave the store unchanged
func (s *Store) Set(next Snapshot) error {
	return s.Update(func(o *Snapshot) { *o = next })
}

// Update applies fn to a copy of the current snapshot and stores the result
// fn runs under the store lock, so concurrent updates never drop each other's changes
func (s *Store) Update(fn func(*Snapshot)) error {
	s.mu.Lock()
	next := s.current
	fn(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	if next == s.current {
		s.mu.Unlock()
		return nil
	}
	s.current = next
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return nil
}

// Subscribe registers fn for every change; the returned func unsubscribes
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// ResetFightDefaults restores HP and damage options, keeping volumes
func (s *Store) ResetFightDefaults() error {
	return s.Update(func(o *Snapshot) { *o = o.WithFightDefaults() })
}

// CycleMaxHP advances max HP to its next value
func (s *Store) CycleMaxHP() error {
	return s.Update(func(o *Snapshot) { o.MaxHP = NextMaxHP(o.MaxHP) })
}

// CycleBaseDamage advances base damage to its next value
func (s *Store) CycleBaseDamage() error {
	return s.Update(func(o *Snapshot) { o.BaseDamage = NextDamage(o.BaseDamage) })
}

// CycleCritDamage advances crit damage to its next value
func (s *Store) CycleCritDamage() error {
	return s.Update(func(o *Snapshot) { o.CritDamage = NextDamage(o.CritDamage) })
}

// CycleMusicVolume advances music volume to its next value
func (s *Store) CycleMusicVolume() error {
	return s.Update(func(o *Snapshot) { o.MusicVolume = NextVolume(o.MusicVolume) })
}

// CycleSFXVolume advances sound effect volume to its next value
func (s *Store) CycleSFXVolume() error {
	return s.Update(func(o *Snapshot) { o.SFXVolume = NextVolume(o.SFXVolume) })
}
