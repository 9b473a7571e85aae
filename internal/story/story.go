// Package story runs one chapter system: a linear scene sequence whose
// advance is gated by an interaction and applied after a scripted delay.
package story

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
	"github.com/vovakirdan/tui-chapters/internal/flow"
	"github.com/vovakirdan/tui-chapters/internal/manifest"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

// Spec is everything a chapter system provides to the story host.
type Spec struct {
	Chapter     manifest.Chapter
	Scenes      *scene.Table
	Themes      choreo.Themes
	Delay       time.Duration
	ReplayLabel string
	// Offers are shown once the final scene's interaction is satisfied.
	Offers []string
	// Notes are short lines for the side panel.
	Notes []string
}

// Pending is a scheduled advance. The host delivers Token back through
// Complete after Delay.
type Pending struct {
	Token uint64
	Delay time.Duration
}

// Session is the state of one running chapter. It is not safe for
// concurrent use; the host calls it from its event loop.
type Session struct {
	spec  Spec
	seq   *flow.Sequence
	state flow.SceneState

	interactionDone bool
	locked          bool
	token           uint64
	closed          bool
}

// NewSession starts a chapter at its first scene.
func NewSession(spec Spec) *Session {
	seq := flow.NewSequence(spec.Scenes.Len())
	return &Session{spec: spec, seq: seq, state: seq.InitialState()}
}

// Activate handles a satisfied interaction on the current scene. On the
// final scene it only marks the interaction satisfied. Otherwise it locks
// the scene and returns the advance to schedule; further calls are ignored
// until that advance completes.
func (s *Session) Activate() (Pending, bool) {
	if s.closed {
		return Pending{}, false
	}
	if s.Done() {
		s.interactionDone = true
		return Pending{}, false
	}
	if s.locked {
		return Pending{}, false
	}
	s.locked = true
	s.interactionDone = true
	s.token++
	return Pending{Token: s.token, Delay: s.spec.Delay}, true
}

// Fallback is the keyboard primary action. Before the final scene it is
// Activate. On the final scene the first press marks the interaction
// satisfied and the second replays the chapter.
func (s *Session) Fallback() (Pending, bool) {
	if !s.Done() {
		return s.Activate()
	}
	if !s.interactionDone {
		s.interactionDone = true
		return Pending{}, false
	}
	s.Replay()
	return Pending{}, false
}

// Complete applies a scheduled advance. Stale tokens and tokens delivered
// after Close are ignored.
func (s *Session) Complete(token uint64) bool {
	if s.closed || !s.locked || token != s.token {
		return false
	}
	s.state = s.seq.Transition(s.state, flow.EventPrimaryAction)
	s.interactionDone = false
	s.locked = false
	return true
}

// Replay returns to the first scene and drops any scheduled advance.
func (s *Session) Replay() {
	if s.closed {
		return
	}
	s.state = s.seq.Transition(s.state, flow.EventReplay)
	s.interactionDone = false
	s.locked = false
	s.token++
}

// Close ends the session. Nothing advances afterwards.
func (s *Session) Close() {
	s.closed = true
	s.token++
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Spec returns the chapter system definition.
func (s *Session) Spec() Spec { return s.spec }

// Index returns the current scene index.
func (s *Session) Index() int { return s.state.Index() }

// Len returns the number of scenes.
func (s *Session) Len() int { return s.seq.Len() }

// Scene returns the current scene descriptor.
func (s *Session) Scene() scene.Descriptor { return s.spec.Scenes.At(s.state.Index()) }

// Done reports whether the current scene is the final one.
func (s *Session) Done() bool { return s.seq.IsFinal(s.state) }

// InteractionDone reports whether the current scene's interaction has
// been satisfied.
func (s *Session) InteractionDone() bool { return s.interactionDone }

// RequiresInteraction is the flag handed to the engine.
func (s *Session) RequiresInteraction() bool { return !s.interactionDone }

// OffersVisible reports whether the closing offers should be shown.
func (s *Session) OffersVisible() bool {
	return s.Done() && s.interactionDone && len(s.spec.Offers) > 0
}

// ActionLabel is the label of the keyboard primary action.
func (s *Session) ActionLabel() string {
	if s.Done() && s.interactionDone {
		return s.spec.ReplayLabel
	}
	return s.Scene().FallbackAction
}

// Kicker is the short heading above the scene title.
func (s *Session) Kicker() string {
	return fmt.Sprintf("Chapter %d · Scene %d", s.spec.Chapter.Index, s.Index()+1)
}

// Progress is the scene counter.
func (s *Session) Progress() string {
	return fmt.Sprintf("Scene %d/%d", s.Index()+1, s.Len())
}
