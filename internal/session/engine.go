package session

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/shnupta/sift/internal/command"
	"github.com/shnupta/sift/internal/debounce"
	"github.com/shnupta/sift/internal/display"
	"github.com/shnupta/sift/internal/runner"
)

// Update is a full snapshot of what the host surface needs to draw. Every
// update is self-contained, so a consumer that misses one is corrected by
// the next.
type Update struct {
	Status  Status
	Query   string // latest committed query
	Preview string // effective command line for the header
	Mode    string // presentation-mode hint from the detectors
	Result  []byte // cached result bytes; only fresh when Redraw is set
	Height  int    // target panel height for the cached result
	Redraw  bool   // the cached result changed byte-for-byte
	Err     string // failure description when Status == StatusError
}

// engine commands, posted by the external API and consumed by the loop.
type (
	cmdQuery  struct{ raw string }
	cmdModify struct{ raw string }
	cmdCycle  struct{}
	cmdRerun  struct{}
	cmdEnd    struct{}
)

// procEvent carries one process completion tagged with the generation it
// was started under. Stale generations are discarded.
type procEvent struct {
	gen int
	c   runner.Completion
}

// Engine drives one Session. All session mutation happens on the loop
// goroutine; the exported methods only post events.
type Engine struct {
	run runner.Iface
	det Detectors

	sess Session // owned by the loop

	cmds      chan any
	updates   chan Update
	timerFire chan int
	procDone  chan procEvent
	done      chan struct{}

	timer        *time.Timer
	timerGen     int
	proc         runner.HandleIface
	procQuit     chan struct{} // closed on cancel so the forwarder exits promptly
	procGen      int
	runningQuery string

	final chan Session // buffered 1; the post-teardown session snapshot
}

// New validates the filter executable, resolves initial format tags through
// the detectors, and starts the engine loop. history seeds the
// immediate-fire fast path with queries committed by prior sessions.
func New(cfg Config, tpl command.Template, input InputSource, history []string, run runner.Iface, det Detectors) (*Engine, error) {
	if err := run.Lookup(cfg.Exe); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	sess := Session{
		ID:       newID(),
		Template: tpl,
		Config:   cfg,
		Input:    input,
		Status:   StatusWaiting,
		History:  append([]string(nil), history...),
	}
	if tpl.References(command.PlaceholderFrom) && det.ReadFormat != nil {
		sess.ReadFormat = det.ReadFormat(sess)
	}
	if tpl.References(command.PlaceholderTo) {
		if det.WriteFormat != nil {
			sess.WriteFormat = det.WriteFormat(sess)
		}
		if sess.WriteFormat == "" && len(cfg.Formats) > 0 {
			sess.WriteFormat = cfg.Formats[0]
		}
	}

	e := &Engine{
		run:       run,
		det:       det,
		sess:      sess,
		cmds:      make(chan any, 16),
		updates:   make(chan Update, 16),
		timerFire: make(chan int),
		procDone:  make(chan procEvent),
		done:      make(chan struct{}),
		final:     make(chan Session, 1),
	}
	go e.loop()
	return e, nil
}

// Updates returns the channel of session updates. It is closed at teardown.
func (e *Engine) Updates() <-chan Update { return e.updates }

// Done is closed once teardown has completed.
func (e *Engine) Done() <-chan struct{} { return e.done }

// QueryChanged feeds one query edit. Unchanged-after-trim input is a no-op.
func (e *Engine) QueryChanged(q string) { e.post(cmdQuery{raw: q}) }

// ModifyCommand replaces the command template's render string and reruns
// the current query immediately.
func (e *Engine) ModifyCommand(raw string) { e.post(cmdModify{raw: raw}) }

// CycleWriteFormat advances the write-format tag and reruns the current
// query immediately.
func (e *Engine) CycleWriteFormat() { e.post(cmdCycle{}) }

// Rerun re-executes the current query, e.g. after the input file changed
// on disk. Cancel-and-replace applies as for any query event.
func (e *Engine) Rerun() { e.post(cmdRerun{}) }

// End triggers full teardown. Safe to call any number of times and from
// any goroutine; teardown runs exactly once.
func (e *Engine) End() { e.post(cmdEnd{}) }

// Final returns the session state after teardown, including the committed
// history. Blocks until the engine has ended.
func (e *Engine) Final() Session {
	<-e.done
	s := <-e.final
	e.final <- s
	return s
}

func (e *Engine) post(c any) {
	select {
	case e.cmds <- c:
	case <-e.done:
	}
}

// ── Event loop ─────────────────────────────────────────────────────────────

func (e *Engine) loop() {
	e.emit() // initial waiting snapshot for the host surface
	for {
		select {
		case c := <-e.cmds:
			switch c := c.(type) {
			case cmdQuery:
				e.onQuery(c.raw)
			case cmdModify:
				e.sess.Template = e.sess.Template.Edit(c.raw)
				e.rerunCurrent()
			case cmdCycle:
				e.onCycle()
			case cmdRerun:
				e.rerunCurrent()
			case cmdEnd:
				e.teardown()
				return
			}
		case gen := <-e.timerFire:
			e.onTimerFire(gen)
		case ev := <-e.procDone:
			e.onProcDone(ev)
		}
	}
}

func (e *Engine) onQuery(raw string) {
	d := debounce.Decide(raw, e.sess.CurrentQuery, e.sess.seenOrHistory(), e.sess.Config.Delay)
	switch d.Kind {
	case debounce.Ignore:
		if d.Query == "" && e.sess.CurrentQuery != "" {
			// Query erased: back to waiting, pending fire abandoned.
			// Cache and displayed content stay put.
			e.sess.CurrentQuery = ""
			e.stopTimer()
			e.sess.Status = StatusWaiting
			e.emit()
		}
	case debounce.FireNow:
		e.sess.CurrentQuery = d.Query
		e.startRun()
	case debounce.Schedule:
		e.sess.CurrentQuery = d.Query
		e.schedule(d.Delay)
	}
}

// onTimerFire handles an elapsed debounce timer. The run decision is
// recomputed from the latest query at fire time: whatever the query was
// when the timer was set, only the current one runs.
func (e *Engine) onTimerFire(gen int) {
	if gen != e.timerGen {
		return // superseded by a newer schedule or a stop
	}
	e.timer = nil
	if e.sess.CurrentQuery == "" {
		return
	}
	e.startRun()
}

func (e *Engine) onCycle() {
	formats := e.sess.Config.Formats
	if len(formats) == 0 {
		return
	}
	next := formats[0]
	for i, f := range formats {
		if f == e.sess.WriteFormat {
			next = formats[(i+1)%len(formats)]
			break
		}
	}
	e.sess.WriteFormat = next
	e.rerunCurrent()
}

// rerunCurrent behaves as a query event for the current query: cancel any
// live work, then run. With no current query there is nothing to run, but
// the preview still changed, so an update is emitted.
func (e *Engine) rerunCurrent() {
	if e.sess.CurrentQuery == "" {
		e.emit()
		return
	}
	e.startRun()
}

// startRun launches a filter process for the current query, cancelling the
// previous timer and process first. Template and launch failures become
// StatusError; the session continues.
func (e *Engine) startRun() {
	e.stopTimer()
	e.cancelProc()

	argv, err := e.sess.Template.Render(e.values())
	if err != nil {
		e.sess.Status = StatusError
		e.emitErr(err)
		return
	}
	h, err := e.run.Start(argv)
	if err != nil {
		e.sess.Status = StatusError
		e.emitErr(err)
		return
	}

	gen := e.procGen
	quit := make(chan struct{})
	e.proc = h
	e.procQuit = quit
	e.runningQuery = e.sess.CurrentQuery
	e.sess.Status = StatusRunning
	go func() {
		select {
		case c := <-h.Done():
			select {
			case e.procDone <- procEvent{gen: gen, c: c}:
			case <-e.done:
			}
		case <-quit:
			// Cancelled process: its Done never delivers, don't park on it.
		case <-e.done:
		}
	}()
	e.emit()
}

func (e *Engine) onProcDone(ev procEvent) {
	if ev.gen != e.procGen {
		return // stale completion from a cancelled process
	}
	e.proc = nil
	e.procQuit = nil // forwarder has already exited

	switch {
	case ev.c.ExitCode != 0:
		e.sess.Status = StatusError
		e.emitErrString(fmt.Sprintf("%s exited with code %d", e.sess.Config.Exe, ev.c.ExitCode))
	case len(ev.c.Output) == 0:
		e.sess.Status = StatusNull
		e.emit()
	default:
		e.sess.Status = StatusSucceed
		e.sess.CachedQuery = e.runningQuery
		e.sess.markSeen(e.runningQuery)
		if !bytes.Equal(ev.c.Output, e.sess.CachedResult) {
			e.sess.CachedResult = ev.c.Output
			lines := display.Lines(ev.c.Output)
			e.sess.CachedHeight = display.Target(e.sess.Config.Style, e.sess.Config.Bounds, e.sess.CachedHeight, lines)
			e.emitRedraw()
		} else {
			e.emit()
		}
	}
}

// ── Timer and process ownership ────────────────────────────────────────────

// schedule arms the debounce timer, replacing any pending one. The fire
// carries its generation so a stale fire racing the stop is discarded.
func (e *Engine) schedule(d time.Duration) {
	e.stopTimer()
	gen := e.timerGen
	e.timer = time.AfterFunc(d, func() {
		select {
		case e.timerFire <- gen:
		case <-e.done:
		}
	})
}

func (e *Engine) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.timerGen++
}

// cancelProc cancels the live process, if any, and bumps the generation so
// its completion, should it still arrive, is discarded. Closing procQuit
// releases the forwarder goroutine, which would otherwise park on a Done
// channel that never delivers.
func (e *Engine) cancelProc() {
	if e.proc != nil {
		e.proc.Cancel()
		close(e.procQuit)
		e.proc = nil
		e.procQuit = nil
	}
	e.procGen++
}

// ── Rendering values and updates ───────────────────────────────────────────

func (e *Engine) values() command.Values {
	return command.Values{
		Cmd:   e.sess.Config.Exe,
		Query: e.sess.CurrentQuery,
		Input: e.sess.Input.Path,
		From:  e.sess.ReadFormat,
		To:    e.sess.WriteFormat,
	}
}

func (e *Engine) preview() string {
	p, err := e.sess.Template.Preview(e.values())
	if err != nil {
		return e.sess.Template.Raw()
	}
	return p
}

func (e *Engine) update() Update {
	u := Update{
		Status:  e.sess.Status,
		Query:   e.sess.CurrentQuery,
		Preview: e.preview(),
		Result:  e.sess.CachedResult,
		Height:  e.sess.CachedHeight,
	}
	if e.det.Mode != nil {
		u.Mode = e.det.Mode(e.sess)
	}
	return u
}

func (e *Engine) emit() { e.send(e.update()) }

func (e *Engine) emitRedraw() {
	u := e.update()
	u.Redraw = true
	e.send(u)
}

func (e *Engine) emitErr(err error) { e.emitErrString(err.Error()) }

func (e *Engine) emitErrString(msg string) {
	u := e.update()
	u.Err = msg
	e.send(u)
}

// send delivers an update without blocking the loop. Under backpressure the
// oldest snapshot is dropped, not the newest: snapshots are self-correcting
// but the Redraw flag is not, so a dropped update's Redraw carries forward
// onto the one that replaces it.
func (e *Engine) send(u Update) {
	for {
		select {
		case e.updates <- u:
			return
		default:
		}
		select {
		case old := <-e.updates:
			if old.Redraw {
				u.Redraw = true
			}
		default:
		}
	}
}

// ── Teardown ───────────────────────────────────────────────────────────────

// teardown runs exactly once, when the loop consumes cmdEnd. Later End
// calls find done closed and become no-ops. Resource-release failures are
// swallowed: teardown must not fail.
func (e *Engine) teardown() {
	e.stopTimer()
	e.cancelProc()
	if e.sess.Input.Kind == SourceTemp && e.sess.Input.Owned {
		_ = os.Remove(e.sess.Input.Path)
		e.sess.Input.Owned = false
	}
	if e.sess.CachedQuery != "" {
		e.sess.History = append(e.sess.History, e.sess.CachedQuery)
	}
	e.final <- e.sess
	close(e.done)
	close(e.updates)
}
