package tui

import (
	"strings"

	"github.com/lixenwraith/dice-duel/manifest"
)

// mirrorRunes swaps direction-bearing glyphs when a sprite is flipped
var mirrorRunes = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'd': 'b', 'b': 'd',
}

// sprite resolves the terminal art of a character's current frame
type sprite struct {
	anims  map[string]manifest.Animation
	frames map[string]map[string]int // key -> frame name -> index
}

func newSprite(ch manifest.Character) *sprite {
	s := &sprite{
		anims:  make(map[string]manifest.Animation, len(ch.Animations)),
		frames: make(map[string]map[string]int, len(ch.Animations)),
	}
	for _, a := range ch.Animations {
		s.anims[a.Key] = a
		idx := make(map[string]int)
		for i, name := range a.FrameNames() {
			idx[name] = i
		}
		s.frames[a.Key] = idx
	}
	return s
}

// lines returns the art for a frame split into rows
func (s *sprite) lines(key, frame string, flip bool) []string {
	a, ok := s.anims[key]
	if !ok {
		return nil
	}
	art := a.Glyph(s.frames[key][frame])
	if art == "" {
		return nil
	}
	rows := strings.Split(art, "\n")
	if flip {
		for i, r := range rows {
			rows[i] = mirror(r)
		}
	}
	return rows
}

// mirror reverses a row and swaps direction-bearing glyphs
func mirror(row string) string {
	rs := []rune(row)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	for i, r := range rs {
		if m, ok := mirrorRunes[r]; ok {
			rs[i] = m
		}
	}
	return string(rs)
}

// width returns the widest row in runes
func width(rows []string) int {
	w := 0
	for _, r := range rows {
		w = max(w, len([]rune(r)))
	}
	return w
}
