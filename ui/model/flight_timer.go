package model

import (
	"time"
)

// FlightTimer tracks the current flight duration, the accumulated airborne
// time and the number of take-offs. The zero value is ready to use.
type FlightTimer struct {
	airborne    bool
	takeoffAt   time.Time
	current     time.Duration
	accumulated time.Duration
	flights     int
}

// NewFlightTimer returns a ready-to-use FlightTimer.
func NewFlightTimer() *FlightTimer { return &FlightTimer{} }

// OnTick advances the timer from the vehicle's airborne state at now.
func (m *FlightTimer) OnTick(airborne bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case airborne && !m.airborne: // take-off
		m.airborne = true
		m.takeoffAt = now
		m.current = 0
		m.flights++
	case airborne:
		m.current = now.Sub(m.takeoffAt)
	case m.airborne: // landed
		m.current = now.Sub(m.takeoffAt)
		m.accumulated += m.current
		m.airborne = false
	}
}

// Values returns the current (or last) flight duration and the total airborne
// time including the ongoing flight.
func (m *FlightTimer) Values() (flight, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	total = m.accumulated
	if m.airborne {
		total += m.current
	}
	return m.current, total
}

// Flights returns the number of take-offs seen.
func (m *FlightTimer) Flights() int {
	if m == nil {
		return 0
	}
	return m.flights
}
