// Package manifest loads the character and stage catalog from TOML files
//
// Layout under the asset root:
//
//	characters.toml                      [[character]] entries
//	characters/<folder>/animation.toml   [[animation]] entries
//	characters/<folder>/sounds.toml      [[sound]] triggers (optional)
//	characters/<folder>/emitters.toml    [[emitter]] triggers (optional)
//	stages.toml                          [[stage]] entries
//
// Every problem is reported at load time; nothing downstream revalidates keys
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	charactersFile = "characters.toml"
	stagesFile     = "stages.toml"
	charactersDir  = "characters"
	animationsFile = "animation.toml"
	soundsFile     = "sounds.toml"
	emittersFile   = "emitters.toml"
)

// Catalog is the validated, read-only set of characters and stages
type Catalog struct {
	characters []Character
	stages     []Stage
	byName     map[string]int
	stageNames map[string]int
}

// Load reads and validates the whole catalog rooted at root
func Load(fsys afero.Fs, root string) (*Catalog, error) {
	var cf characterFile
	if err := decodeFile(fsys, path.Join(root, charactersFile), &cf, false); err != nil {
		return nil, err
	}

	cat := &Catalog{
		byName:     make(map[string]int),
		stageNames: make(map[string]int),
	}

	for i := range cf.Characters {
		c := cf.Characters[i]
		if err := checkCharacter(&c); err != nil {
			return nil, fmt.Errorf("character %d (%q): %w", i, c.Name, err)
		}
		if _, dup := cat.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: character %q", ErrDuplicate, c.Name)
		}
		if err := loadCharacterData(fsys, path.Join(root, charactersDir, c.Folder), &c); err != nil {
			return nil, fmt.Errorf("character %q: %w", c.Name, err)
		}
		cat.byName[c.Name] = len(cat.characters)
		cat.characters = append(cat.characters, c)
	}

	var sf stageFile
	if err := decodeFile(fsys, path.Join(root, stagesFile), &sf, true); err != nil {
		return nil, err
	}
	for i := range sf.Stages {
		s := sf.Stages[i]
		if err := checkStage(&s); err != nil {
			return nil, err
		}
		if _, dup := cat.stageNames[s.Name]; dup {
			return nil, fmt.Errorf("%w: stage %q", ErrDuplicate, s.Name)
		}
		cat.stageNames[s.Name] = len(cat.stages)
		cat.stages = append(cat.stages, s)
	}

	return cat, nil
}

func loadCharacterData(fsys afero.Fs, dir string, c *Character) error {
	var af animationFile
	if err := decodeFile(fsys, path.Join(dir, animationsFile), &af, false); err != nil {
		return err
	}

	keys := make(map[string]bool, len(af.Animations))
	for i := range af.Animations {
		a := &af.Animations[i]
		if err := checkAnimation(a); err != nil {
			return err
		}
		if keys[a.Key] {
			return fmt.Errorf("%w: animation %q", ErrDuplicate, a.Key)
		}
		keys[a.Key] = true
	}
	c.Animations = af.Animations

	var snd soundFile
	if err := decodeFile(fsys, path.Join(dir, soundsFile), &snd, true); err != nil {
		return err
	}
	for i := range snd.Sounds {
		if err := checkTrigger(&snd.Sounds[i], keys, snd.Sounds[i].Animation); err != nil {
			return fmt.Errorf("sound %d: %w", i, err)
		}
	}
	c.Sounds = snd.Sounds

	var em emitterFile
	if err := decodeFile(fsys, path.Join(dir, emittersFile), &em, true); err != nil {
		return err
	}
	for i := range em.Emitters {
		if err := checkTrigger(&em.Emitters[i], keys, em.Emitters[i].Animation); err != nil {
			return fmt.Errorf("emitter %d: %w", i, err)
		}
	}
	c.Particles = em.Emitters

	return nil
}

// decodeFile strictly decodes a TOML file into v
// A missing optional file leaves v untouched
func decodeFile(fsys afero.Fs, name string, v any, optional bool) error {
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Characters returns all characters in manifest order
func (c *Catalog) Characters() []Character {
	return c.characters
}

// Character looks a character up by name
func (c *Catalog) Character(name string) (Character, error) {
	i, ok := c.byName[name]
	if !ok {
		return Character{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}
	return c.characters[i], nil
}

// Stages returns all stages in manifest order
func (c *Catalog) Stages() []Stage {
	return c.stages
}

// Stage looks a stage up by name
func (c *Catalog) Stage(name string) (Stage, error) {
	i, ok := c.stageNames[name]
	if !ok {
		return Stage{}, fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
	return c.stages[i], nil
}

// Names returns sorted character names
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.characters))
	for _, ch := range c.characters {
		names = append(names, ch.Name)
	}
	sort.Strings(names)
	return names
}

// Animation returns the animation with the given key
func (ch Character) Animation(key string) (Animation, bool) {
	for _, a := range ch.Animations {
		if a.Key == key {
			return a, true
		}
	}
	return Animation{}, false
}

// DisplayName returns the title-cased name for menus
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}
