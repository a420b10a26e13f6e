// Package tui is the terminal front end: a tcell scene drawing the stage,
// fighters, dice, particles and health bars, and the input loop that turns
// keys into rounds, rematches and option changes.
package tui

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dice-duel/die"
	"github.com/lixenwraith/dice-duel/match"
	"github.com/lixenwraith/dice-duel/options"
	"github.com/lixenwraith/dice-duel/parameter"
	"github.com/lixenwraith/dice-duel/platform"
)

// Scene holds what the fight shows besides the match state itself
// Implements fight.UI; safe to call from the round goroutine
type Scene struct {
	mu        sync.Mutex
	trigger   bool
	postMatch string
	log       []string
	status    string

	match   *match.Match
	sprites map[string]*sprite
}

// NewScene creates a scene with no match attached
func NewScene() *Scene {
	return &Scene{}
}

// Attach binds the match the scene draws
func (s *Scene) Attach(m *match.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = m
	s.sprites = map[string]*sprite{
		match.P1: newSprite(m.Fighters[0]),
		match.P2: newSprite(m.Fighters[1]),
	}
}

// ShowRoundTrigger shows or hides the roll prompt
func (s *Scene) ShowRoundTrigger(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trigger = visible
	if visible {
		s.postMatch = ""
	}
}

// ShowPostMatch shows the rematch menu for the winner
func (s *Scene) ShowPostMatch(winnerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postMatch = winnerID
}

// TriggerVisible reports whether the roll prompt is shown
func (s *Scene) TriggerVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger
}

// PostMatch returns the winner shown in the post-match menu, empty when hidden
func (s *Scene) PostMatch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postMatch
}

// Log appends a line to the event log, keeping the most recent ones
func (s *Scene) Log(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, line)
	if n := len(s.log) - parameter.EventLogLines; n > 0 {
		s.log = s.log[n:]
	}
}

// SetStatus sets the transient status line
func (s *Scene) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = text
}

// Draw renders one frame
func (s *Scene) Draw(screen tcell.Screen, now time.Time, opts options.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bg := style(colorText)
	screen.SetStyle(bg)
	screen.Clear()

	w, h := screen.Size()
	if w < parameter.MinScreenWidth || h < parameter.MinScreenHeight {
		drawText(screen, 0, 0, parameter.TooSmallText, style(colorWounded))
		screen.Show()
		return
	}
	if s.match == nil {
		screen.Show()
		return
	}

	ox := (w - parameter.ArenaWidth) / 2
	oy := parameter.HUDHeight

	s.drawHUD(screen, ox)
	s.drawStage(screen, ox, oy)
	heads := s.drawFighters(screen, ox, oy)
	s.drawDice(screen, ox, oy, heads)
	s.drawParticles(screen, ox, oy, now)
	s.drawFooter(screen, ox, oy+parameter.ArenaHeight, opts)

	screen.Show()
}

func (s *Scene) drawHUD(screen tcell.Screen, ox int) {
	m := s.match
	right := ox + parameter.ArenaWidth
	for i, c := range []struct {
		id      string
		hp, max int
	}{
		{match.P1, m.P1.HP(), m.P1.MaxHP()},
		{match.P2, m.P2.HP(), m.P2.MaxHP()},
	} {
		label := fmt.Sprintf("%s %d/%d", m.DisplayName(c.id), c.hp, c.max)
		ratio := float64(max(c.hp, 0)) / float64(c.max)
		filled := int(math.Round(ratio * parameter.HealthBarWidth))
		bar := style(healthColor(ratio))

		// P2's bar is right-aligned and drains toward the right edge
		left, from := ox, 0
		if i == 1 {
			left = right - parameter.HealthBarWidth
			from = parameter.HealthBarWidth - filled
			drawText(screen, right-len([]rune(label)), 0, label, style(colorText))
		} else {
			drawText(screen, left, 0, label, style(colorText))
		}

		for x := 0; x < parameter.HealthBarWidth; x++ {
			ch := '░'
			if x >= from && x < from+filled {
				ch = '█'
			}
			screen.SetContent(left+x, 1, ch, nil, bar)
		}
	}
}

func (s *Scene) drawStage(screen tcell.Screen, ox, oy int) {
	for _, c := range s.match.Stage.Components {
		drawText(screen, ox+c.X, oy+c.Y, c.Glyph, style(colorDim))
	}
}

// drawFighters draws both sprites and returns the row above each head
func (s *Scene) drawFighters(screen tcell.Screen, ox, oy int) map[string]int {
	heads := make(map[string]int, 2)
	for i, id := range []string{match.P1, match.P2} {
		pos := s.match.Stage.PlayerPositions[i]
		key, frame, ok := s.match.Sequencer.Current(id)
		rows := []string{"?"}
		if ok {
			if r := s.sprites[id].lines(key, frame, pos.Flip); len(r) > 0 {
				rows = r
			}
		}

		top := oy + pos.Y - len(rows) + 1
		left := ox + pos.X - width(rows)/2
		for dy, row := range rows {
			drawText(screen, left, top+dy, row, style(colorText))
		}
		heads[id] = top - 1
	}
	return heads
}

func (s *Scene) drawDice(screen tcell.Screen, ox, oy int, heads map[string]int) {
	for i, d := range []*die.Die{s.match.Die1, s.match.Die2} {
		id := match.P1
		if i == 1 {
			id = match.P2
		}
		pos := s.match.Stage.PlayerPositions[i]
		row := heads[id] - parameter.DieGap + int(math.Round(d.Offset()))
		left := ox + pos.X - 2

		body := style(colorDie)
		if d.State() == die.Failed {
			body = style(colorWounded)
		}
		drawText(screen, left, row, "[  ]", body)

		v, shown := d.Value()
		if !shown {
			continue
		}
		textRow := row + int(math.Round(d.TextOffset()))
		text := fmt.Sprintf("%2d", v)
		textStyle := style(colorText)
		if v == parameter.DieFaces {
			textStyle = style(colorAccent).Bold(true)
		}
		drawText(screen, left+1, textRow, text, textStyle)
	}
}

func (s *Scene) drawParticles(screen tcell.Screen, ox, oy int, now time.Time) {
	for _, p := range s.match.Particles.Active() {
		ax, ay := s.anchorPosition(p.Follow)
		age := now.Sub(p.Started)
		t := 0.0
		if p.Config.Lifetime > 0 {
			t = float64(age) / float64(p.Config.Lifetime)
		}
		rise := int(age.Seconds() * parameter.ParticleRiseSpeed)

		glyph, ok := particleGlyphs[p.ID]
		if !ok {
			glyph = '·'
		}
		base, ok := particleColors[p.ID]
		if !ok {
			base = colorText
		}
		st := style(fade(base, t))

		n := max(p.Config.Quantity, 1)
		for i := 0; i < n; i++ {
			x := ox + ax + p.Config.OffsetX + i - n/2
			y := oy + ay + p.Config.OffsetY - rise - (i % 2)
			if y < oy {
				continue
			}
			screen.SetContent(x, y, glyph, nil, st)
		}
	}
}

// anchorPosition maps a particle anchor to arena cells
func (s *Scene) anchorPosition(a platform.Anchor) (int, int) {
	switch a.AnchorID() {
	case match.P1:
		p := s.match.Stage.PlayerPositions[0]
		return p.X, p.Y - 1
	case match.P2:
		p := s.match.Stage.PlayerPositions[1]
		return p.X, p.Y - 1
	}
	if f, ok := a.(platform.FixedAnchor); ok {
		return f.X, f.Y
	}
	return 0, 0
}

func (s *Scene) drawFooter(screen tcell.Screen, ox, y int, opts options.Snapshot) {
	prompt := ""
	switch {
	case s.postMatch != "":
		prompt = fmt.Sprintf("%s wins!  %s", s.match.DisplayName(s.postMatch), parameter.RematchText)
	case s.trigger:
		prompt = parameter.RoundTriggerText
	}
	drawCentered(screen, ox, y, prompt, style(colorAccent).Bold(true))

	info := fmt.Sprintf("hp %d  dmg %d  crit %d  music %.2f  sfx %.2f  %s",
		opts.MaxHP, opts.BaseDamage, opts.CritDamage, opts.MusicVolume, opts.SFXVolume, s.status)
	drawText(screen, ox, y+1, strings.TrimSpace(info), style(colorDim))

	for i, line := range s.log {
		drawText(screen, ox, y+2+i, line, style(colorDim))
	}
}

func drawText(screen tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		if r != ' ' {
			screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

func drawCentered(screen tcell.Screen, ox, y int, text string, st tcell.Style) {
	x := ox + (parameter.ArenaWidth-len([]rune(text)))/2
	drawText(screen, x, y, text, st)
}
