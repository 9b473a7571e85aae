// Package flow implements the narrative flow controllers.
// Both controllers are pure: a transition takes a state and an event and
// returns a new state value. States are opaque and can only be obtained from
// the controller that owns them, so pacing gates cannot be bypassed.
package flow

import "github.com/vovakirdan/tui-chapters/internal/manifest"

// Stage names a position in the journey.
type Stage string

const (
	StageIntro            Stage = "intro"
	StageChapter          Stage = "chapter"
	StageGateDisease      Stage = "gate_disease"
	StageGateArchitecture Stage = "gate_architecture"
	StageGateMetrics      Stage = "gate_metrics"
	StageDecisionLab      Stage = "decision_lab"
	StageOfferBook        Stage = "offer_book"
	StageOfferService     Stage = "offer_service"
	StageComplete         Stage = "complete"
)

// Event is an input to the journey controller.
type Event string

const (
	EventAdvance Event = "ADVANCE"
	EventReset   Event = "RESET"
)

// State is an immutable journey position.
type State struct {
	stage        Stage
	chapterIndex int
	completed    int
}

// Stage returns the current stage.
func (s State) Stage() Stage { return s.stage }

// ChapterIndex returns the 0-based chapter index. Only meaningful in
// StageChapter; gate and terminal stages keep the last chapter visited.
func (s State) ChapterIndex() int { return s.chapterIndex }

// Completed returns how many chapters have been finished.
func (s State) Completed() int { return s.completed }

// Gate intercepts the forward edge out of one chapter.
type Gate struct {
	Stage        Stage
	AfterChapter int
}

// Threshold is the completed count needed to leave the gate.
func (g Gate) Threshold() int { return g.AfterChapter + 1 }

// DefaultGates returns the three pacing gates of the book journey.
func DefaultGates() []Gate {
	return []Gate{
		{Stage: StageGateDisease, AfterChapter: 2},
		{Stage: StageGateArchitecture, AfterChapter: 9},
		{Stage: StageGateMetrics, AfterChapter: 12},
	}
}

// ChapterSource resolves chapters by 0-based index.
// *manifest.Manifest satisfies it.
type ChapterSource interface {
	Len() int
	ChapterByIndex(i int) (manifest.Chapter, bool)
}

// Journey is the multi-chapter controller with pacing gates.
type Journey struct {
	chapters ChapterSource
	gates    []Gate
}

// NewJourney creates a journey over chapters. When no gates are given the
// default gates are used.
func NewJourney(chapters ChapterSource, gates ...Gate) *Journey {
	if len(gates) == 0 {
		gates = DefaultGates()
	}
	return &Journey{chapters: chapters, gates: gates}
}

// Total returns the number of chapters in the journey.
func (j *Journey) Total() int {
	return j.chapters.Len()
}

// Gates returns a copy of the configured gates.
func (j *Journey) Gates() []Gate {
	out := make([]Gate, len(j.gates))
	copy(out, j.gates)
	return out
}

// InitialState returns the intro state.
func (j *Journey) InitialState() State {
	return State{stage: StageIntro}
}

func (j *Journey) gateFor(stage Stage) (Gate, bool) {
	for _, g := range j.gates {
		if g.Stage == stage {
			return g, true
		}
	}
	return Gate{}, false
}

func (j *Journey) gateAfter(chapterIndex int) (Gate, bool) {
	for _, g := range j.gates {
		if g.AfterChapter == chapterIndex {
			return g, true
		}
	}
	return Gate{}, false
}

// CanAdvance reports whether ADVANCE would leave the current stage.
func (j *Journey) CanAdvance(s State) bool {
	if g, ok := j.gateFor(s.stage); ok {
		return s.completed >= g.Threshold()
	}
	return true
}

// Transition applies an event. Unknown events and blocked advances return s.
func (j *Journey) Transition(s State, e Event) State {
	switch e {
	case EventReset:
		return j.InitialState()
	case EventAdvance:
	default:
		return s
	}

	if !j.CanAdvance(s) {
		return s
	}

	switch s.stage {
	case StageIntro:
		s.stage = StageChapter
		s.chapterIndex = 0
		return s

	case StageChapter:
		s.completed = max(s.completed, s.chapterIndex+1)
		if g, ok := j.gateAfter(s.chapterIndex); ok {
			s.stage = g.Stage
			return s
		}
		if s.chapterIndex >= j.Total()-1 {
			s.stage = StageDecisionLab
			return s
		}
		s.chapterIndex++
		return s

	case StageDecisionLab:
		s.stage = StageOfferBook
		return s
	case StageOfferBook:
		s.stage = StageOfferService
		return s
	case StageOfferService:
		s.stage = StageComplete
		return s
	}

	if g, ok := j.gateFor(s.stage); ok {
		s.stage = StageChapter
		s.chapterIndex = g.AfterChapter + 1
		return s
	}

	// complete, or a stage this journey does not know: start over
	return j.InitialState()
}

// IsGate reports whether the stage is one of the pacing gates.
func (s Stage) IsGate() bool {
	switch s {
	case StageGateDisease, StageGateArchitecture, StageGateMetrics:
		return true
	}
	return false
}
