package launcher

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	Out     io.Writer
}

// Start might start the spinner
func (m *MaybeSpinner) Start() {
	if m.Spin {
		m.Spinner.Start()
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

// Update will update the spinner text
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Suffix = " " + t

	if !m.Spin {
		fmt.Fprintln(m.Out, t)
	}
}

// HandleStage can be used as [Launcher.OnStage]
func (m *MaybeSpinner) HandleStage(e Event) {
	switch e.Stage {
	case StageQueued:
		m.Start()
		m.Update("Queued " + e.Message)
	case StagePreparing:
		m.Update("Preparing " + e.Message)
	case StageLaunching:
		m.Update("Launching Minecraft")
	case StageRunning:
		// the game writes to the terminal from here on
		m.Stop()
	case StageDone, StageError:
		m.Stop()
	}
}

// HandleProgress can be used as [Launcher.OnProgress]. It only updates
// the spinner text, plain output would be far too noisy
func (m *MaybeSpinner) HandleProgress(written int64, total int64) {
	if !m.Spin {
		return
	}
	if total <= 0 {
		m.Spinner.Suffix = " Downloading installer " + humanize.Bytes(uint64(written))
		return
	}
	m.Spinner.Suffix = fmt.Sprintf(
		" Downloading installer %s / %s",
		humanize.Bytes(uint64(written)),
		humanize.Bytes(uint64(total)),
	)
}

// NewMaybeSpinner will return a new MaybeSpinner writing to out
func NewMaybeSpinner(spin bool, out io.Writer) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(out)),
		Out:     out,
	}
	s.Spinner.Prefix = " "
	return s
}
