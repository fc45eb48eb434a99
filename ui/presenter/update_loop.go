package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// Each Tick processes one frame, flushes status changes to the view,
// advances the flight timer and invokes the scheduler callback. The zero
// value is usable (methods are nil-safe).
type Loop struct {
	Frames   *FramePresenter
	Status   *StatusPresenter
	Flight   *FlightPresenter
	Schedule func()
	now      func() time.Time
}

func NewLoop(frames *FramePresenter, status *StatusPresenter, flight *FlightPresenter, schedule func()) *Loop {
	return &Loop{Frames: frames, Status: status, Flight: flight, Schedule: schedule, now: time.Now}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.now != nil {
		now = l.now()
	}
	// Frames first: processing may change the status (auto land).
	l.Frames.ProcessFrame(now)
	l.Status.Tick(now)
	l.Flight.Tick(now)
	if l.Schedule != nil {
		l.Schedule()
	}
}
