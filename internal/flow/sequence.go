package flow

// SceneEvent is an input to a single-chapter sequence.
type SceneEvent string

const (
	EventPrimaryAction SceneEvent = "PRIMARY_ACTION"
	EventReplay        SceneEvent = "REPLAY"
)

// SceneState is an immutable position inside one chapter.
type SceneState struct {
	index int
}

// Index returns the 0-based scene index.
func (s SceneState) Index() int { return s.index }

// Sequence is the linear single-chapter controller: no gates, advance is
// clamped at the final scene.
type Sequence struct {
	n int
}

// NewSequence creates a controller over n scenes. n is at least 1.
func NewSequence(n int) *Sequence {
	if n < 1 {
		n = 1
	}
	return &Sequence{n: n}
}

// Len returns the number of scenes.
func (q *Sequence) Len() int { return q.n }

// InitialState returns scene 0.
func (q *Sequence) InitialState() SceneState {
	return SceneState{}
}

// IsFinal reports whether s is at (or past) the last scene.
func (q *Sequence) IsFinal(s SceneState) bool {
	return s.index >= q.n-1
}

// Transition applies an event. PRIMARY_ACTION at the final scene and
// unknown events return s unchanged.
func (q *Sequence) Transition(s SceneState, e SceneEvent) SceneState {
	switch e {
	case EventReplay:
		return q.InitialState()
	case EventPrimaryAction:
		if q.IsFinal(s) {
			return s
		}
		return SceneState{index: s.index + 1}
	}
	return s
}
