package manifest

// Import methods a character's sprite data can be loaded with
const (
	ImportAtlas       = "atlas"
	ImportFrames      = "frames"
	ImportUnity       = "unity"
	ImportSpritesheet = "spritesheet"
)

// Trigger types
const (
	TriggerFrame = "frame"
	TriggerTime  = "time"
)

// Particle targets
const (
	TargetNone     = "none"
	TargetSelf     = "self"
	TargetOpponent = "opponent"
)

// Character is one entry of characters.toml plus the per-folder data files
type Character struct {
	Name         string `toml:"name" validate:"required"`
	Folder       string `toml:"folder" validate:"required"`
	ImportMethod string `toml:"import_method" validate:"required,oneof=atlas frames unity spritesheet"`
	// Frames maps frame keys to image paths, required by the frames import method
	Frames      map[string]string `toml:"frames" validate:"required_if=ImportMethod frames,dive,required"`
	Spritesheet *SpritesheetDef   `toml:"spritesheet" validate:"required_if=ImportMethod spritesheet"`

	// Loaded from <folder>/animation.toml, sounds.toml and emitters.toml
	Animations []Animation       `toml:"-" validate:"-"`
	Sounds     []SoundTrigger    `toml:"-" validate:"-"`
	Particles  []ParticleTrigger `toml:"-" validate:"-"`
}

// SpritesheetDef is the fixed-grid frame layout of a spritesheet
type SpritesheetDef struct {
	FrameWidth  int `toml:"frame_width" validate:"min=1"`
	FrameHeight int `toml:"frame_height" validate:"min=1"`
	StartFrame  int `toml:"start_frame" validate:"min=0"`
	EndFrame    int `toml:"end_frame" validate:"min=0"`
}

// Animation is a named frame sequence
// Frames are given explicitly or generated from FrameData
type Animation struct {
	Key       string     `toml:"key" validate:"required"`
	FrameRate float64    `toml:"frame_rate" validate:"gte=0"`
	Repeat    int        `toml:"repeat" validate:"gte=-1"`
	Frames    []string   `toml:"frames"`
	FrameData *FrameData `toml:"frame_data" validate:"omitempty"`
	// Glyphs is the terminal art per frame, cycled when shorter than the frame list
	Glyphs []string `toml:"glyphs"`
}

// FrameData generates prefix + zero-padded index + suffix names for start..end inclusive
type FrameData struct {
	Prefix  string `toml:"prefix"`
	Start   int    `toml:"start" validate:"min=0"`
	End     int    `toml:"end" validate:"min=0"`
	ZeroPad int    `toml:"zero_pad" validate:"min=0"`
	Suffix  string `toml:"suffix"`
}

// SoundTrigger plays a sound at a point of an animation
type SoundTrigger struct {
	Animation string `toml:"animation" validate:"required"`
	Trigger   string `toml:"trigger" validate:"required,oneof=frame time"`
	Value     int    `toml:"value" validate:"min=0"`
	Sound     string `toml:"sound" validate:"required"`
}

// ParticleTrigger starts a particle effect at a point of an animation
// Offsets are relative to the followed actor, or arena cells for target none
type ParticleTrigger struct {
	Animation  string `toml:"animation" validate:"required"`
	Trigger    string `toml:"trigger" validate:"required,oneof=frame time"`
	Value      int    `toml:"value" validate:"min=0"`
	Particle   string `toml:"particle" validate:"required"`
	Target     string `toml:"target" validate:"omitempty,oneof=none self opponent"`
	DurationMS int    `toml:"duration_ms" validate:"min=0"`
	OffsetX    int    `toml:"offset_x"`
	OffsetY    int    `toml:"offset_y"`
	Quantity   int    `toml:"quantity" validate:"min=0"`
}

// Stage is one entry of stages.toml
type Stage struct {
	Name            string           `toml:"name" validate:"required"`
	Folder          string           `toml:"folder" validate:"required"`
	Type            string           `toml:"type" validate:"omitempty,oneof=static layered"`
	PlayerPositions []Position       `toml:"player_positions" validate:"len=2,dive"`
	BGM             string           `toml:"bgm"`
	Components      []StageComponent `toml:"components" validate:"dive"`
}

// Position is a point in arena cells
// Flip mirrors the combatant to face left
type Position struct {
	X    int  `toml:"x" validate:"min=0"`
	Y    int  `toml:"y" validate:"min=0"`
	Flip bool `toml:"flip"`
}

// StageComponent is a static piece of scenery
type StageComponent struct {
	Name  string `toml:"name" validate:"required"`
	Glyph string `toml:"glyph" validate:"required"`
	X     int    `toml:"x" validate:"min=0"`
	Y     int    `toml:"y" validate:"min=0"`
}

// Wrappers matching the document layout of each file
type (
	characterFile struct {
		Characters []Character `toml:"character"`
	}
	animationFile struct {
		Animations []Animation `toml:"animation"`
	}
	soundFile struct {
		Sounds []SoundTrigger `toml:"sound"`
	}
	emitterFile struct {
		Emitters []ParticleTrigger `toml:"emitter"`
	}
	stageFile struct {
		Stages []Stage `toml:"stage"`
	}
)
