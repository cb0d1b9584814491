package watch

// FakeWatcher is an Iface implementation for tests. Push change events via
// Send() to simulate file system activity.
type FakeWatcher struct {
	ch chan struct{}
}

// compile-time check
var _ Iface = (*FakeWatcher)(nil)

// NewFakeWatcher creates a FakeWatcher with a buffered channel.
func NewFakeWatcher() *FakeWatcher {
	return &FakeWatcher{ch: make(chan struct{}, 4)}
}

// Events returns the channel on which change events are delivered.
func (f *FakeWatcher) Events() <-chan struct{} { return f.ch }

// Close closes the events channel.
func (f *FakeWatcher) Close() { close(f.ch) }

// Send pushes a change event into the events channel.
func (f *FakeWatcher) Send() { f.ch <- struct{}{} }
