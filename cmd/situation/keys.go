package situation

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Command is what a key press asks the simulation to do
type Command int

const (
	CommandToggle Command = iota + 1
	CommandView
	CommandQuit
)

// KeyAction is a decoded key press
type KeyAction struct {
	Command Command
	View    ViewMode
}

const ctrlC = 0x03

// ParseKey decodes a single key byte
func ParseKey(b byte) (KeyAction, bool) {
	switch b {
	case ' ', 'p', 'P':
		return KeyAction{Command: CommandToggle}, true
	case '1', 'd', 'D':
		return KeyAction{Command: CommandView, View: ViewDashboard}, true
	case '2', 'm', 'M':
		return KeyAction{Command: CommandView, View: ViewMapOnly}, true
	case '3', 't', 'T':
		return KeyAction{Command: CommandView, View: ViewTerminalOnly}, true
	case 'q', 'Q', ctrlC:
		return KeyAction{Command: CommandQuit}, true
	}
	return KeyAction{}, false
}

// Keyboard puts a terminal in raw mode and decodes key presses
type Keyboard struct {
	in      *os.File
	fd      int
	state   *term.State
	actions chan KeyAction

	done      chan struct{}
	closeOnce sync.Once
}

// OpenKeyboard switches in to raw mode. in must be a terminal.
func OpenKeyboard(in *os.File) (*Keyboard, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	k := &Keyboard{
		in:      in,
		fd:      fd,
		state:   state,
		actions: make(chan KeyAction, 8),
		done:    make(chan struct{}),
	}
	go readKeys(in, k.actions, k.done)
	return k, nil
}

// Actions delivers decoded key presses
func (k *Keyboard) Actions() <-chan KeyAction {
	return k.actions
}

// Close stops the reader and restores the terminal state. Where the file
// does not support read deadlines the reader exits after its next read and
// discards it.
func (k *Keyboard) Close() error {
	k.closeOnce.Do(func() {
		close(k.done)
		if err := k.in.SetReadDeadline(time.Now()); err == nil {
			for range k.actions {
			}
			_ = k.in.SetReadDeadline(time.Time{})
		}
	})
	return term.Restore(k.fd, k.state)
}

// readKeys decodes r until it fails or done is closed. Presses are dropped
// while out is full.
func readKeys(r io.Reader, out chan<- KeyAction, done <-chan struct{}) {
	defer close(out)
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		select {
		case <-done:
			return
		default:
		}
		for _, b := range buf[:n] {
			action, ok := ParseKey(b)
			if !ok {
				continue
			}
			select {
			case out <- action:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalSize returns the size of the terminal behind f, or fallback values
func TerminalSize(f *os.File, fallbackWidth, fallbackHeight int) (width, height int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}
