package manifest

import (
	"fmt"
	"strconv"
)

// GenerateFrameNames expands frame data into prefix + padded index + suffix names
// Counts down when End < Start
func GenerateFrameNames(fd FrameData) []string {
	step := 1
	if fd.End < fd.Start {
		step = -1
	}

	names := make([]string, 0, abs(fd.End-fd.Start)+1)
	for i := fd.Start; ; i += step {
		names = append(names, fd.Prefix+pad(i, fd.ZeroPad)+fd.Suffix)
		if i == fd.End {
			break
		}
	}
	return names
}

// FrameNames returns the animation's explicit frames or the generated ones
func (a Animation) FrameNames() []string {
	if len(a.Frames) > 0 {
		return a.Frames
	}
	if a.FrameData != nil {
		return GenerateFrameNames(*a.FrameData)
	}
	return nil
}

// Glyph returns the terminal art for a frame index
func (a Animation) Glyph(frame int) string {
	if len(a.Glyphs) == 0 || frame < 0 {
		return ""
	}
	return a.Glyphs[frame%len(a.Glyphs)]
}

func pad(n, width int) string {
	if width <= 0 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%0*d", width, n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
