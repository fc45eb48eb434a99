package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/blob-follower/domain/flight"
)

// StatusView sets the state label in the view.
type StatusView interface{ SetStateLabel(string) }

// StatusPresenter receives controller status changes and reflects the most
// recent one on the next Tick.
type StatusPresenter struct {
	view    StatusView
	latest  flight.Status
	shown   bool
	pending []flight.Status
}

// NewStatusPresenter queues initial so the first Tick renders it.
func NewStatusPresenter(initial flight.Status, view StatusView) *StatusPresenter {
	return &StatusPresenter{view: view, pending: []flight.Status{initial}}
}

// OnStatus matches flight.StatusListener.
func (p *StatusPresenter) OnStatus(_, next flight.Status) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick flushes the queue, updating the view only when the status differs
// from what is shown.
func (p *StatusPresenter) Tick(time.Time) {
	if p == nil || p.view == nil || len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	if p.shown && last == p.latest {
		return
	}
	p.latest = last
	p.shown = true
	p.view.SetStateLabel(FormatStatus(last))
}

// FormatStatus renders a status for the state label.
func FormatStatus(s flight.Status) string {
	return fmt.Sprintf("State: %s | Follow: %s | Auto land: %s | Camera: %s",
		s.State, onOff(s.Follow), onOff(s.AutoLand), s.Profile)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
