// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"fmt"
	"slices"
	"sync"
)

// EventKind classifies execution log events.
type EventKind uint8

// Execution log event kinds.
const (
	// EventWait is logged when a batch finished waiting on a semaphore.
	EventWait EventKind = iota
	// EventExecute is logged after a command buffer executed.
	EventExecute
	// EventSignal is logged before a semaphore is signaled.
	EventSignal
	// EventFence is logged before a fence is signaled.
	EventFence
	// EventAbort is logged when a submission is dropped on device loss
	// or destruction.
	EventAbort
)

var eventKindNames = [...]string{"Wait", "Execute", "Signal", "Fence", "Abort"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one queue operation.
type Event struct {
	// Seq orders events across all queues of a device, starting at 1.
	Seq uint64
	// Queue is "family.index".
	Queue      string
	Submission uint64
	Kind       EventKind
	// Label names the command buffer, semaphore or fence.
	Label string
	// Draws and Dispatches count the commands of an executed buffer.
	Draws      int
	Dispatches int
}

// ExecutionLog records queue operations in execution order. It is safe
// for concurrent use.
type ExecutionLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *ExecutionLog) add(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.Seq = uint64(len(l.events)) + 1
	l.events = append(l.events, e)
}

// Events returns a copy of the events.
func (l *ExecutionLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// Find returns the first event of kind with label, if any.
func (l *ExecutionLog) Find(kind EventKind, label string) (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e.Kind == kind && e.Label == label {
			return e, true
		}
	}
	return Event{}, false
}

// Reset drops every event.
func (l *ExecutionLog) Reset() {
	l.mu.Lock()
	l.events = nil
	l.mu.Unlock()
}
