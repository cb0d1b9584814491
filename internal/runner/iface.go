package runner

// Iface defines the process operations used by the session engine.
// Enables mocking in tests without spawning real processes.
type Iface interface {
	Lookup(exe string) error
	Start(argv []string) (HandleIface, error)
}

// HandleIface is the ownership handle for one live process.
type HandleIface interface {
	Done() <-chan Completion
	Cancel()
}

// Runner implements Iface by spawning real processes via os/exec.
type Runner struct{}

// Compile-time check that Runner satisfies Iface.
var _ Iface = (*Runner)(nil)

func (r *Runner) Lookup(exe string) error { return Lookup(exe) }

func (r *Runner) Start(argv []string) (HandleIface, error) {
	h, err := Start(argv)
	if err != nil {
		return nil, err
	}
	return h, nil
}
