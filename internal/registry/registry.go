// Package registry provides a global registry of chapter systems.
// Chapter packages register themselves in init() functions, allowing the
// platform to discover and start chapters without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-chapters/internal/manifest"
	"github.com/vovakirdan/tui-chapters/internal/story"
)

// Status describes how complete a chapter system is.
type Status string

const (
	StatusReady      Status = "ready"
	StatusScaffolded Status = "scaffolded"
)

// ErrUnknownChapter is returned when a chapter id has no registered system.
var ErrUnknownChapter = errors.New("registry: unknown chapter")

// Factory builds the story definition for a manifest chapter.
type Factory func(ch manifest.Chapter) story.Spec

// Entry is a registered chapter system as listed by the hub.
type Entry struct {
	manifest.Chapter
	Status Status
}

type registration struct {
	status  Status
	factory Factory
}

var (
	systems  = make(map[int]registration)
	chapters = manifest.Default()
	mu       sync.RWMutex
)

// Register adds a chapter system for the manifest chapter at index
// (1-based). Panics if the index is unknown or already registered.
func Register(index int, status Status, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := chapters.ChapterByIndex(index - 1); !ok {
		panic(fmt.Sprintf("registry: chapter %d is not in the manifest", index))
	}
	if _, exists := systems[index]; exists {
		panic(fmt.Sprintf("registry: chapter %d already registered", index))
	}

	systems[index] = registration{status: status, factory: f}
}

// List returns all registered chapter systems in manifest order.
func List() []Entry {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Entry, 0, len(systems))
	for _, ch := range chapters.Chapters {
		if r, ok := systems[ch.Index]; ok {
			result = append(result, Entry{Chapter: ch, Status: r.status})
		}
	}
	return result
}

// Lookup returns the registered chapter system with the given id.
func Lookup(id string) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()

	ch, ok := chapters.ChapterByID(id)
	if !ok {
		return Entry{}, false
	}
	r, ok := systems[ch.Index]
	if !ok {
		return Entry{}, false
	}
	return Entry{Chapter: ch, Status: r.status}, true
}

// Create builds the story definition for a chapter id.
func Create(id string) (story.Spec, error) {
	mu.RLock()
	defer mu.RUnlock()

	ch, ok := chapters.ChapterByID(id)
	if !ok {
		return story.Spec{}, fmt.Errorf("%w %q", ErrUnknownChapter, id)
	}
	r, ok := systems[ch.Index]
	if !ok {
		return story.Spec{}, fmt.Errorf("%w %q", ErrUnknownChapter, id)
	}
	return r.factory(ch), nil
}

// Exists checks if a chapter with the given id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Validate checks that every manifest chapter has a registered system.
func Validate() error {
	mu.RLock()
	defer mu.RUnlock()

	var missing []string
	for _, ch := range chapters.Chapters {
		if _, ok := systems[ch.Index]; !ok {
			missing = append(missing, ch.ID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("registry: missing chapter systems for %v", missing)
	}
	return nil
}

// Manifest returns the manifest the registry resolves chapters against.
func Manifest() *manifest.Manifest {
	return chapters
}

// reset clears all registrations. Used by tests.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	systems = make(map[int]registration)
}
