// Package announce implements the uploader's live regions: serialized
// sinks of human-readable status lines that assistive front-ends render.
// The polite region is a process-wide singleton created lazily on first
// announcement; announcements are serialized, so multiple uploader
// instances share it safely.
package announce

import (
	"sync"
	"time"

	"pdfsmaller/internal/log"
)

// Message is one announced status line.
type Message struct {
	Text      string
	Assertive bool
	Timestamp time.Time
}

// Region is a live region. Subscribers receive every announcement in
// order; the last line is retained for late subscribers and tests.
type Region struct {
	mu        sync.Mutex
	assertive bool
	last      string
	history   []Message
	nextID    int
	subs      map[int]func(Message)
}

func newRegion(assertive bool) *Region {
	return &Region{assertive: assertive, subs: map[int]func(Message){}}
}

var (
	politeOnce sync.Once
	politeReg  *Region

	assertiveOnce sync.Once
	assertiveReg  *Region
)

// Polite returns the shared polite region, creating it on first use.
func Polite() *Region {
	politeOnce.Do(func() {
		politeReg = newRegion(false)
	})
	return politeReg
}

// Assertive returns the shared assertive region, used for state changes
// the user must hear immediately (toggle disabled/enabled).
func Assertive() *Region {
	assertiveOnce.Do(func() {
		assertiveReg = newRegion(true)
	})
	return assertiveReg
}

// Announce publishes a status line to every subscriber.
func (r *Region) Announce(text string) {
	if text == "" {
		return
	}

	msg := Message{Text: text, Assertive: r.assertive, Timestamp: time.Now().UTC()}

	r.mu.Lock()
	r.last = text
	r.history = append(r.history, msg)
	fns := make([]func(Message), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	log.LogWithFields(log.F("assertive", r.assertive)).Debugf("announce: %s", text)
	for _, fn := range fns {
		fn(msg)
	}
}

// Subscribe registers a callback for future announcements. The returned
// function removes it.
func (r *Region) Subscribe(fn func(Message)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.subs[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

// Last returns the most recently announced line.
func (r *Region) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// History returns every line announced so far.
func (r *Region) History() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.history))
	copy(out, r.history)
	return out
}
