package presenter

import (
	"time"

	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/ui/model"
)

// FlightView displays the current flight and total airborne durations.
type FlightView interface {
	SetFlightTime(current, total time.Duration)
}

// FlightPresenter feeds the controller's state into the flight timer and
// pushes the durations to the view.
type FlightPresenter struct {
	timer  *model.FlightTimer
	status flight.StatusSource
	view   FlightView
}

func NewFlightPresenter(timer *model.FlightTimer, status flight.StatusSource, view FlightView) *FlightPresenter {
	return &FlightPresenter{timer: timer, status: status, view: view}
}

func (p *FlightPresenter) Tick(now time.Time) {
	if p == nil || p.timer == nil || p.status == nil || p.view == nil {
		return
	}
	p.timer.OnTick(p.status.Status().State == flight.StateAirborne, now)
	cur, total := p.timer.Values()
	p.view.SetFlightTime(cur, total)
}
