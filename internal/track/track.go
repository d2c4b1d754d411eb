// Package track records the objects a device created so that leaks can be
// reported and released when the device is destroyed.
//
// Entries do not keep objects alive in any meaningful sense: the tracker
// holds the destroy callback only, and objects remove themselves when the
// caller destroys them.
package track

import (
	"log/slog"
	"slices"
	"sync"
)

// Kind classifies tracked objects.
type Kind uint8

// Object kinds, in the order their names are reported.
const (
	KindBuffer Kind = iota
	KindImage
	KindImageView
	KindSampler
	KindShaderModule
	KindRenderPass
	KindFrameBuffer
	KindDescriptorSetLayout
	KindDescriptorSet
	KindPipelineLayout
	KindPipeline
	KindCommandBuffer
	KindFence
	KindSemaphore
	kindCount
)

var kindNames = [...]string{
	KindBuffer:              "Buffer",
	KindImage:               "Image",
	KindImageView:           "ImageView",
	KindSampler:             "Sampler",
	KindShaderModule:        "ShaderModule",
	KindRenderPass:          "RenderPass",
	KindFrameBuffer:         "FrameBuffer",
	KindDescriptorSetLayout: "DescriptorSetLayout",
	KindDescriptorSet:       "DescriptorSet",
	KindPipelineLayout:      "PipelineLayout",
	KindPipeline:            "Pipeline",
	KindCommandBuffer:       "CommandBuffer",
	KindFence:               "Fence",
	KindSemaphore:           "Semaphore",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// ID identifies one tracked object. IDs increase in creation order and are
// never reused by a tracker.
type ID uint64

// Entry describes a live object.
type Entry struct {
	ID    ID
	Kind  Kind
	Label string
}

type record struct {
	Entry
	release func()
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	next    ID
	live    map[ID]record
	created [kindCount]uint64
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{live: make(map[ID]record)}
}

// Add registers a live object. release is called by ReleaseAll when the
// object is still alive at that point; it must end in a call to Remove.
func (t *Tracker) Add(kind Kind, label string, release func()) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	id := t.next
	t.live[id] = record{Entry: Entry{ID: id, Kind: kind, Label: label}, release: release}
	t.created[kind]++
	return id
}

// Remove forgets an object. Removing an unknown ID is a no-op.
func (t *Tracker) Remove(id ID) {
	t.mu.Lock()
	delete(t.live, id)
	t.mu.Unlock()
}

// Len returns the number of live objects.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Count returns the number of live objects of one kind.
func (t *Tracker) Count(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, r := range t.live {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Live returns the live objects in creation order.
func (t *Tracker) Live() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liveLocked()
}

func (t *Tracker) liveLocked() []Entry {
	out := make([]Entry, 0, len(t.live))
	for _, r := range t.live {
		out = append(out, r.Entry)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Stats are lifetime counters of a tracker.
type Stats struct {
	Live    int
	Created uint64
}

// Stats returns lifetime counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{Live: len(t.live)}
	for _, n := range t.created {
		s.Created += n
	}
	return s
}

// ReleaseAll releases every live object, newest first, so that views and
// frame buffers go before the images and render passes they reference.
// Each object is logged as a leak. It returns the leaked entries.
func (t *Tracker) ReleaseAll(log *slog.Logger, owner string) []Entry {
	t.mu.Lock()
	leaks := t.liveLocked()
	releases := make([]func(), len(leaks))
	for i, e := range leaks {
		releases[i] = t.live[e.ID].release
	}
	t.mu.Unlock()

	for i := len(leaks) - 1; i >= 0; i-- {
		e := leaks[i]
		log.Warn("gal: object leaked",
			slog.String("device", owner),
			slog.String("kind", e.Kind.String()),
			slog.String("label", e.Label),
			slog.Uint64("id", uint64(e.ID)))
		if releases[i] != nil {
			releases[i]()
		}
		t.Remove(e.ID)
	}
	return leaks
}
