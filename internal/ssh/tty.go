// Package ssh adapts SSH sessions to the tcell terminal interface so each
// connection can drive its own game screen.
package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty over an SSH channel. Each connected client
// gets its own SessionTty and tcell.Screen pair.
type SessionTty struct {
	rw     io.ReadWriteCloser
	winCh  <-chan gossh.Window
	done   chan struct{}
	closed sync.Once
	watch  sync.Once

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell
}

var _ tcell.Tty = (*SessionTty)(nil)

// NewSessionTty wraps a gliderlabs SSH session as a tcell Tty. pty holds the
// initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return newTty(s, pty.Window, winCh)
}

func newTty(rw io.ReadWriteCloser, win gossh.Window, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		rw:     rw,
		winCh:  winCh,
		done:   make(chan struct{}),
		window: win,
	}
}

// Read reads raw keyboard input from the channel.
func (t *SessionTty) Read(b []byte) (int, error) { return t.rw.Read(b) }

// Write writes rendered output to the channel.
func (t *SessionTty) Write(b []byte) (int, error) { return t.rw.Write(b) }

// Close stops resize tracking and closes the channel. Safe to call twice.
func (t *SessionTty) Close() error {
	var err error
	t.closed.Do(func() {
		close(t.done)
		err = t.rw.Close()
	})
	return err
}

// Start is a no-op; the channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op; the server handler owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH writes are not buffered here.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers the callback run on every window change. The first
// call starts a goroutine that follows the window channel until it closes or
// the tty is closed; later calls only replace the callback.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.watch.Do(func() { go t.followResizes() })
}

func (t *SessionTty) followResizes() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
