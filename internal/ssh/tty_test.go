package ssh

import (
	"bytes"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	bytes.Buffer
	closes int
}

func (f *fakeChannel) Close() error {
	f.closes++
	return nil
}

func TestWindowSizeFollowsResizes(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := newTty(&fakeChannel{}, gossh.Window{Width: 80, Height: 24}, winCh)

	ws, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, 80, ws.Width)
	assert.Equal(t, 24, ws.Height)

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	tty.NotifyResize(func() { resized <- struct{}{} }) // replaces the callback, no second watcher

	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-resized:
	case <-time.After(time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	assert.Equal(t, 120, ws.Width)
	assert.Equal(t, 40, ws.Height)
	require.NoError(t, tty.Close())
}

func TestCloseIsIdempotent(t *testing.T) {
	ch := &fakeChannel{}
	tty := newTty(ch, gossh.Window{}, make(chan gossh.Window))
	tty.NotifyResize(nil)
	require.NoError(t, tty.Close())
	require.NoError(t, tty.Close())
	assert.Equal(t, 1, ch.closes)
}

func TestReadWritePassThrough(t *testing.T) {
	ch := &fakeChannel{}
	ch.WriteString("q")
	tty := newTty(ch, gossh.Window{}, nil)

	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "q", string(buf[:n]))

	_, err = tty.Write([]byte("\x1b[2J"))
	require.NoError(t, err)
	assert.Equal(t, "\x1b[2J", ch.String())

	assert.NoError(t, tty.Start())
	assert.NoError(t, tty.Drain())
	assert.NoError(t, tty.Stop())
}
