package buildspec

import "errors"

// Structural errors distinguishing a fundamentally unreadable spec from the
// soft conditions that merely degrade to defaults.
var (
	ErrMissingFrames = errors.New("spec has no frames list")
	ErrMissingDelays = errors.New("spec has no delays list")
)

// frameDecl is one entry of a spec's frame list before path expansion. An
// inline delay overrides the positional delays list for every file the
// declaration expands to.
type frameDecl struct {
	pathSpec string
	inline   *Delay
}

// assembleFrames walks the declarations in order and merges the three delay
// sources: inline tokens win, then the positional delays list, then the
// spec-wide default. The positional index advances exactly once per
// declaration, never per expanded file, so a wildcard consumes one slot of
// the delays list even when it contributes many frames.
func assembleFrames(decls []frameDecl, delays []Delay, defaultDelay Delay, baseDir string) ([]FrameInfo, error) {
	var frames []FrameInfo
	for index, decl := range decls {
		delay := defaultDelay
		switch {
		case decl.inline != nil:
			delay = *decl.inline
		case index < len(delays):
			delay = delays[index]
		}

		files, err := ResolveFiles(decl.pathSpec, baseDir)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			frames = append(frames, FrameInfo{Path: file, Delay: delay})
		}
	}
	return frames, nil
}
