// Package display tracks the pre-authored alternate displays that can replace the particle cloud.
package display

import (
	"log"
	"strings"
	"sync"
)

// Handle is the visibility capability of a loaded display asset.
type Handle interface {
	SetVisible(visible bool)
}

// Entry describes one alternate display.
type Entry struct {
	// Name identifies the entry.
	Name string
	// Keywords trigger the entry when any of them is contained in lower-cased command text.
	Keywords []string
	// Scale is the uniform scale the asset is drawn at.
	Scale float64
	// AssetPath is opaque metadata for whatever loads the asset.
	AssetPath string
}

// DefaultEntries returns the three stock displays.
//
// Returns:
//   - []Entry: the human, eiffel and burj entries
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "human", Keywords: []string{"human"}, Scale: 50, AssetPath: "human.glb"},
		{Name: "eiffel", Keywords: []string{"eiffel"}, Scale: 0.5, AssetPath: "eiffel.glb"},
		{Name: "burj", Keywords: []string{"burj"}, Scale: 0.05, AssetPath: "burj.glb"},
	}
}

type slot struct {
	entry   Entry
	handle  Handle
	visible bool
}

// Registry is the ordered set of display entries. Visibility requested before an entry's handle is
// attached is recorded and applied on Attach.
type Registry interface {
	// Register appends an entry. Registering a name twice replaces the earlier entry's metadata
	// but keeps its handle and visibility.
	//
	// Parameters:
	//   - e: the entry to add
	Register(e Entry)

	// Attach supplies the handle for a named entry, marks it ready, and applies its pending visibility.
	//
	// Parameters:
	//   - name: the entry name
	//   - h: the loaded asset's handle
	//
	// Returns:
	//   - bool: false if no entry has that name
	Attach(name string, h Handle) bool

	// Ready reports whether the named entry has a handle.
	Ready(name string) bool

	// Entries returns a copy of every entry in registration order.
	Entries() []Entry

	// Match returns the names of every entry with a keyword contained in text, in registration order.
	// text must already be lower-cased.
	//
	// Parameters:
	//   - text: the lower-cased command text
	//
	// Returns:
	//   - []string: the matching entry names
	Match(text string) []string

	// HideAll sets every entry invisible.
	HideAll()

	// Show makes the named entries visible. Unknown names are ignored.
	//
	// Parameters:
	//   - names: the entries to show
	Show(names ...string)

	// Visible returns the names of entries whose desired visibility is on, in registration order.
	// This reflects requests made before the handle was attached.
	Visible() []string
}

type registry struct {
	mu    *sync.Mutex
	slots []*slot
	index map[string]*slot
}

var _ Registry = &registry{}

// NewRegistry creates a registry holding the given entries.
//
// Parameters:
//   - entries: the initial entries, in match order
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry(entries ...Entry) Registry {
	r := &registry{
		mu:    &sync.Mutex{},
		index: make(map[string]*slot),
	}
	for _, e := range entries {
		r.Register(e)
	}
	return r
}

func (r *registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kw := make([]string, 0, len(e.Keywords))
	for _, k := range e.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	e.Keywords = kw

	if s, ok := r.index[e.Name]; ok {
		s.entry = e
		return
	}
	s := &slot{entry: e}
	r.slots = append(r.slots, s)
	r.index[e.Name] = s
}

func (r *registry) Attach(name string, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.index[name]
	if !ok {
		return false
	}
	s.handle = h
	if h != nil {
		h.SetVisible(s.visible)
	}
	return true
}

func (r *registry) Ready(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.index[name]
	return ok && s.handle != nil
}

func (r *registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.entry
	}
	return out
}

func (r *registry) Match(text string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.slots {
		for _, k := range s.entry.Keywords {
			if strings.Contains(text, k) {
				out = append(out, s.entry.Name)
				break
			}
		}
	}
	return out
}

func (r *registry) HideAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		r.setVisible(s, false)
	}
}

func (r *registry) Show(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		if s, ok := r.index[n]; ok {
			r.setVisible(s, true)
		}
	}
}

func (r *registry) Visible() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.slots {
		if s.visible {
			out = append(out, s.entry.Name)
		}
	}
	return out
}

// setVisible records the desired visibility and forwards it when the handle is attached.
// Caller must hold the mutex.
func (r *registry) setVisible(s *slot, visible bool) {
	s.visible = visible
	if s.handle != nil {
		s.handle.SetVisible(visible)
		return
	}
	if visible {
		log.Printf("[Display] %s not ready, visibility deferred", s.entry.Name)
	}
}
