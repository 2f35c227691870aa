package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// spinner animates a braille wheel next to a message until stopped or its
// context ends. The line is cleared when it finishes.
type spinner struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{cancel: cancel, done: make(chan struct{})}
	blank := "\r" + strings.Repeat(" ", len([]rune(message))+2) + "\r"

	go func() {
		defer close(s.done)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			fmt.Fprintf(w, "\r%s %s", styleAccent.Render(string(spinnerFrames[frame%len(spinnerFrames)])), styleMuted.Render(message))
			select {
			case <-ctx.Done():
				io.WriteString(w, blank)
				return
			case <-tick.C:
			}
		}
	}()
	return s
}

// stop ends the animation and waits for the line to clear. Calling it more
// than once is safe.
func (s *spinner) stop() {
	s.cancel()
	<-s.done
}
