package buildspec

// FrameInfo pairs one resolved image file with its display delay. A wildcard
// declaration produces several FrameInfo values sharing a single delay.
type FrameInfo struct {
	Path  string
	Delay Delay
}

// Document is the normalized result of loading a build specification. It is
// immutable after construction; every accessor is safe to share.
type Document struct {
	name      string
	loops     uint
	skipFirst bool
	frames    []FrameInfo
}

// Name returns the animation name, empty when the spec did not set one.
func (d *Document) Name() string {
	return d.name
}

// Loops returns the playback loop count; 0 means loop forever.
func (d *Document) Loops() uint {
	return d.loops
}

// SkipFirst reports whether playback skips the first frame.
func (d *Document) SkipFirst() bool {
	return d.skipFirst
}

// Frames returns the resolved frame sequence in declaration order. The slice
// is a copy; callers cannot mutate the document through it.
func (d *Document) Frames() []FrameInfo {
	frames := make([]FrameInfo, len(d.frames))
	copy(frames, d.frames)
	return frames
}

// FrameCount returns the number of resolved frames.
func (d *Document) FrameCount() int {
	return len(d.frames)
}
