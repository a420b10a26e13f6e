// Package effect turns the declarative sound and particle triggers of a
// character into timed side effects of its animations.
package effect

import (
	"time"

	"github.com/lixenwraith/dice-duel/manifest"
	"github.com/lixenwraith/dice-duel/platform"
)

// Kind is the side effect a trigger produces
type Kind int

const (
	KindSound Kind = iota
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindSound:
		return "sound"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// TriggerType selects what the trigger value measures
type TriggerType int

const (
	// FrameIndex fires on the first frame advance with index >= value
	FrameIndex TriggerType = iota
	// ElapsedTime fires value milliseconds after the animation starts
	ElapsedTime
)

// Target selects what a particle follows
type Target int

const (
	TargetNone Target = iota
	TargetSelf
	TargetOpponent
)

// Trigger binds one point of an animation's timeline to an effect
type Trigger struct {
	Key      string
	Kind     Kind
	Type     TriggerType
	Value    int
	EffectID string

	// Particle only
	Target   Target
	Duration time.Duration
	Config   platform.ParticleConfig
}

// Delay returns the ElapsedTime offset
func (t Trigger) Delay() time.Duration {
	return time.Duration(t.Value) * time.Millisecond
}

// Table holds a character's triggers grouped by animation key
// Built once per actor and read-only afterwards
type Table struct {
	byKey map[string][]Trigger
	count int
}

// BuildTable collects a character's sound and particle triggers
func BuildTable(ch manifest.Character) *Table {
	t := &Table{byKey: make(map[string][]Trigger)}

	for _, s := range ch.Sounds {
		t.add(Trigger{
			Key:      s.Animation,
			Kind:     KindSound,
			Type:     triggerType(s.Trigger),
			Value:    s.Value,
			EffectID: s.Sound,
		})
	}

	for _, p := range ch.Particles {
		d := time.Duration(p.DurationMS) * time.Millisecond
		t.add(Trigger{
			Key:      p.Animation,
			Kind:     KindParticle,
			Type:     triggerType(p.Trigger),
			Value:    p.Value,
			EffectID: p.Particle,
			Target:   target(p.Target),
			Duration: d,
			Config: platform.ParticleConfig{
				OffsetX:  p.OffsetX,
				OffsetY:  p.OffsetY,
				Quantity: p.Quantity,
				Lifetime: d,
			},
		})
	}

	return t
}

// NewTable builds a table from explicit triggers
func NewTable(triggers ...Trigger) *Table {
	t := &Table{byKey: make(map[string][]Trigger)}
	for _, tr := range triggers {
		t.add(tr)
	}
	return t
}

func (t *Table) add(tr Trigger) {
	t.byKey[tr.Key] = append(t.byKey[tr.Key], tr)
	t.count++
}

// Triggers returns the triggers of an animation key, nil if it has none
func (t *Table) Triggers(key string) []Trigger {
	if t == nil {
		return nil
	}
	return t.byKey[key]
}

// Len returns the total number of triggers
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

func triggerType(s string) TriggerType {
	if s == manifest.TriggerTime {
		return ElapsedTime
	}
	return FrameIndex
}

func target(s string) Target {
	switch s {
	case manifest.TargetSelf:
		return TargetSelf
	case manifest.TargetOpponent:
		return TargetOpponent
	default:
		return TargetNone
	}
}
