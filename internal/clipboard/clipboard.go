// Package clipboard copies notification text to the system clipboard.
//
// Two writers exist: the native one (X11/Wayland/macOS/Windows tools through
// atotto/clipboard) and an OSC 52 escape sequence written to the terminal, which
// works over SSH and inside tmux. Probe picks an order at runtime.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrClipboardFailure is returned when every writer failed.
var ErrClipboardFailure = errors.New("clipboard write failed")

// MsgClipboardFailure is shown when a copy could not be completed.
const MsgClipboardFailure = "コピーに失敗しました。手動でコピーしてください。"

// Writer puts text on a clipboard.
type Writer interface {
	Write(text string) error
	Name() string
}

// nativeWriteAll is swapped out in tests.
var nativeWriteAll = clipboard.WriteAll

// Native writes through the platform clipboard utilities.
type Native struct{}

func (Native) Name() string { return "native" }

func (Native) Write(text string) error {
	return nativeWriteAll(text)
}

// OSC52 asks the terminal emulator to set the clipboard.
type OSC52 struct {
	Out  io.Writer
	Tmux bool
}

func (o OSC52) Name() string { return "osc52" }

func (o OSC52) Write(text string) error {
	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	_, err := seq.WriteTo(out)
	return err
}

// Chain tries Primary, then Fallback.
type Chain struct {
	Primary  Writer
	Fallback Writer
}

func (c Chain) Name() string {
	if c.Fallback == nil {
		return c.Primary.Name()
	}
	return c.Primary.Name() + "+" + c.Fallback.Name()
}

func (c Chain) Write(text string) error {
	err := c.Primary.Write(text)
	if err == nil {
		return nil
	}
	if c.Fallback == nil {
		return fmt.Errorf("%w: %s: %v", ErrClipboardFailure, c.Primary.Name(), err)
	}
	if ferr := c.Fallback.Write(text); ferr != nil {
		return fmt.Errorf("%w: %s: %v; %s: %v", ErrClipboardFailure, c.Primary.Name(), err, c.Fallback.Name(), ferr)
	}
	return nil
}

// Probe returns the native writer backed by OSC 52 when the platform has a
// clipboard utility, and OSC 52 alone otherwise.
func Probe(out io.Writer) Writer {
	fallback := OSC52{Out: out, Tmux: os.Getenv("TMUX") != ""}
	if clipboard.Unsupported {
		return Chain{Primary: fallback}
	}
	return Chain{Primary: Native{}, Fallback: fallback}
}
