// Package drone adapts vehicle drivers to the flight.Actuator contract.
package drone

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"sync/atomic"
	"time"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/dji/tello"

	"github.com/soocke/blob-follower/domain/control"
	"github.com/soocke/blob-follower/domain/flight"
)

// videoKeepAlive is how often the Tello is asked to keep streaming.
const videoKeepAlive = 100 * time.Millisecond

// takeoffGrace is how long after a takeoff the vehicle counts as airborne
// even while flight data still reports it on the ground.
const takeoffGrace = 5 * time.Second

// ErrNotConnected is returned by TakeOff before the handshake completes.
var ErrNotConnected = errors.New("drone: tello not connected")

// Tello drives a DJI Tello through gobot. Flight data arrives on gobot's
// event goroutine, so the fields it updates are atomic.
type Tello struct {
	logger *slog.Logger
	driver *tello.Driver
	robot  *gobot.Robot

	relayAddr string
	relay     net.Conn

	flying    atomic.Bool
	battery   atomic.Int32
	connected atomic.Bool
	launched  atomic.Int64 // unix nanos of the last takeoff, 0 after landing

	now func() time.Time
}

// NewTello returns a driver listening on port. When relayAddr (host:port)
// is non-empty the raw H.264 video stream is forwarded there as UDP
// datagrams, so a camera source can open it as "udp://<relayAddr>".
func NewTello(logger *slog.Logger, port, relayAddr string) *Tello {
	t := &Tello{logger: logger, driver: tello.NewDriver(port), relayAddr: relayAddr, now: time.Now}
	t.battery.Store(-1)
	return t
}

// Start connects to the vehicle. It returns once the gobot robot is running;
// the connection itself is reported asynchronously.
func (t *Tello) Start() error {
	if t.relayAddr != "" {
		conn, err := net.Dial("udp", t.relayAddr)
		if err != nil {
			return fmt.Errorf("drone: video relay %s: %w", t.relayAddr, err)
		}
		t.relay = conn
	}
	t.driver.On(tello.FlightDataEvent, func(data interface{}) {
		fd, ok := data.(*tello.FlightData)
		if !ok || fd == nil {
			return
		}
		t.flying.Store(fd.Flying)
		t.battery.Store(int32(fd.BatteryPercentage))
	})
	t.driver.On(tello.ConnectedEvent, func(data interface{}) {
		t.connected.Store(true)
		if t.logger != nil {
			t.logger.Info("tello connected")
		}
		if t.relay == nil {
			return
		}
		t.driver.StartVideo()
		t.driver.SetVideoEncoderRate(tello.VideoBitRateAuto)
		gobot.Every(videoKeepAlive, func() {
			t.driver.StartVideo()
		})
	})
	t.driver.On(tello.VideoFrameEvent, func(data interface{}) {
		pkt, ok := data.([]byte)
		if !ok || t.relay == nil {
			return
		}
		if _, err := t.relay.Write(pkt); err != nil && t.logger != nil {
			t.logger.Debug("video relay write", "error", err)
		}
	})
	t.robot = gobot.NewRobot("blob-follower",
		[]gobot.Connection{},
		[]gobot.Device{t.driver},
	)
	if err := t.robot.Start(false); err != nil {
		return fmt.Errorf("drone: start tello: %w", err)
	}
	return nil
}

// Stop halts the robot and closes the video relay.
func (t *Tello) Stop() error {
	var err error
	if t.robot != nil {
		err = t.robot.Stop()
	}
	if t.relay != nil {
		_ = t.relay.Close()
		t.relay = nil
	}
	return err
}

// SetVelocity maps each axis onto the matching pair of directional calls.
// Axis values are clamped to [-1, 1] and scaled to the driver's 0-100 range.
func (t *Tello) SetVelocity(cmd control.VelocityCommand) error {
	cmd = cmd.Clamp(1)
	if cmd.IsZero() {
		t.driver.Hover()
		return nil
	}
	if err := axis(cmd.VX, t.driver.Forward, t.driver.Backward); err != nil {
		return err
	}
	if err := axis(cmd.VY, t.driver.Left, t.driver.Right); err != nil {
		return err
	}
	if err := axis(cmd.VZ, t.driver.Up, t.driver.Down); err != nil {
		return err
	}
	return axis(cmd.YawRate, t.driver.CounterClockwise, t.driver.Clockwise)
}

// axis sends v through pos when non-negative, through neg otherwise.
func axis(v float64, pos, neg func(int) error) error {
	speed := int(math.Round(math.Abs(v) * 100))
	if v < 0 {
		return neg(speed)
	}
	return pos(speed)
}

// TakeOff refuses to launch before the vehicle has connected.
func (t *Tello) TakeOff() error {
	if !t.Connected() {
		return ErrNotConnected
	}
	if err := t.driver.TakeOff(); err != nil {
		return err
	}
	t.launched.Store(t.now().UnixNano())
	return nil
}

func (t *Tello) Land() error {
	if err := t.driver.Land(); err != nil {
		return err
	}
	t.launched.Store(0)
	return nil
}

// Calibrate has no Tello equivalent.
func (t *Tello) Calibrate() error { return flight.ErrUnsupported }

// FlatTrim has no Tello equivalent.
func (t *Tello) FlatTrim() error { return flight.ErrUnsupported }

// Emergency stops all motion and lands.
func (t *Tello) Emergency() error {
	t.driver.Hover()
	return t.driver.Land()
}

// OnGround reports the last flight data, or true before any was received.
// A recent takeoff counts as airborne until flight data catches up.
func (t *Tello) OnGround() bool {
	if t.flying.Load() {
		return false
	}
	at := t.launched.Load()
	return at == 0 || t.now().Sub(time.Unix(0, at)) >= takeoffGrace
}

// Connected reports whether the vehicle has answered the handshake.
func (t *Tello) Connected() bool { return t.connected.Load() }

// Battery returns the last reported charge.
func (t *Tello) Battery() (int, bool) {
	b := t.battery.Load()
	return int(b), b >= 0
}

var (
	_ flight.Actuator        = (*Tello)(nil)
	_ flight.BatteryReporter = (*Tello)(nil)
)
