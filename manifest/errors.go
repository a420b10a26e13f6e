package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Load errors, wrapped with the offending entry
var (
	ErrMissingFolder       = errors.New("folder name is missing")
	ErrImportMethod        = errors.New("import method not stated")
	ErrUnknownImportMethod = errors.New("unknown import method")
	ErrMissingFrames       = errors.New("frame data not given")
	ErrMissingSpritesheet  = errors.New("spritesheet config data not given")
	ErrMissingFrameData    = errors.New("frames data missing from animation")
	ErrInvalidTrigger      = errors.New("invalid effect trigger")
	ErrInvalidStage        = errors.New("invalid stage")
	ErrDuplicate           = errors.New("duplicate entry")
	ErrUnknownCharacter    = errors.New("unknown character")
	ErrUnknownStage        = errors.New("unknown stage")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkCharacter maps struct validation failures onto the load sentinels
func checkCharacter(c *Character) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := verrs[0]
	switch {
	case fe.StructField() == "Folder":
		return ErrMissingFolder
	case fe.StructField() == "ImportMethod" && fe.Tag() == "required":
		return ErrImportMethod
	case fe.StructField() == "ImportMethod":
		return fmt.Errorf("%w: %q", ErrUnknownImportMethod, c.ImportMethod)
	case strings.HasPrefix(fe.StructNamespace(), "Character.Frames"):
		return fmt.Errorf("%w: %s", ErrMissingFrames, fe.Namespace())
	case strings.HasPrefix(fe.StructNamespace(), "Character.Spritesheet"):
		return fmt.Errorf("%w: %s", ErrMissingSpritesheet, fe.Namespace())
	default:
		return fmt.Errorf("character %q: %w", c.Name, verrs)
	}
}

func checkAnimation(a *Animation) error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("animation %q: %w", a.Key, err)
	}
	if len(a.Frames) == 0 && a.FrameData == nil {
		return fmt.Errorf("%w: %q", ErrMissingFrameData, a.Key)
	}
	return nil
}

func checkTrigger(v any, animations map[string]bool, anim string) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrigger, err)
	}
	if !animations[anim] {
		return fmt.Errorf("%w: no animation %q", ErrInvalidTrigger, anim)
	}
	return nil
}

func checkStage(s *Stage) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidStage, s.Name, err)
	}
	return nil
}
