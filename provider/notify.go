package provider

import (
	"log/slog"
	"strings"
	"sync"
)

// Notifier receives the address of every successful change
type Notifier interface {
	Notify(address string)
}

// NopNotifier discards notifications
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(string) {}

// Observer is called with the changed address
type Observer func(address string)

type registration struct {
	id          int
	address     string
	descendants bool
	observer    Observer
}

// Resolver is an in-process Notifier that fans changes out to registered
// observers. A change at X reaches observers registered on X, on a
// descendant of X, and on an ancestor of X that asked for descendants.
// Observers run synchronously on the notifying goroutine.
type Resolver struct {
	mu            sync.RWMutex
	nextID        int
	registrations []registration
	logger        *slog.Logger
}

// NewResolver creates an empty resolver
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Register adds observer for address and returns a function that removes it
func (r *Resolver) Register(address string, descendants bool, observer Observer) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.registrations = append(r.registrations, registration{
		id:          id,
		address:     strings.TrimSuffix(address, "/"),
		descendants: descendants,
		observer:    observer,
	})

	return func() { r.unregister(id) }
}

func (r *Resolver) unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, reg := range r.registrations {
		if reg.id == id {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return
		}
	}
}

// Notify delivers address to every matching observer in registration order
func (r *Resolver) Notify(address string) {
	changed := strings.TrimSuffix(address, "/")

	r.mu.RLock()
	var targets []Observer
	for _, reg := range r.registrations {
		if matches(reg, changed) {
			targets = append(targets, reg.observer)
		}
	}
	r.mu.RUnlock()

	r.logger.Debug("change notified", "address", address, "observers", len(targets))

	for _, observer := range targets {
		observer(address)
	}
}

func matches(reg registration, changed string) bool {
	switch {
	case reg.address == changed:
		return true
	case isDescendant(reg.address, changed):
		return true
	case reg.descendants && isDescendant(changed, reg.address):
		return true
	default:
		return false
	}
}

func isDescendant(child, parent string) bool {
	return strings.HasPrefix(child, parent+"/")
}
