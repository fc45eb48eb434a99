package flight

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/control"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeActuator struct {
	onGround   bool
	calls      []string
	failLand   bool
	camera     config.CameraProfile
	velocity   control.VelocityCommand
	noFlatTrim bool
}

func (f *fakeActuator) SetVelocity(v control.VelocityCommand) error {
	f.velocity = v
	return nil
}
func (f *fakeActuator) TakeOff() error {
	f.calls = append(f.calls, "takeoff")
	f.onGround = false
	return nil
}
func (f *fakeActuator) Land() error {
	f.calls = append(f.calls, "land")
	if f.failLand {
		return errors.New("link down")
	}
	f.onGround = true
	return nil
}
func (f *fakeActuator) Calibrate() error { f.calls = append(f.calls, "calibrate"); return nil }
func (f *fakeActuator) FlatTrim() error {
	if f.noFlatTrim {
		return ErrUnsupported
	}
	f.calls = append(f.calls, "flattrim")
	return nil
}
func (f *fakeActuator) Emergency() error { f.calls = append(f.calls, "emergency"); return nil }
func (f *fakeActuator) OnGround() bool   { return f.onGround }
func (f *fakeActuator) SelectCamera(p config.CameraProfile) error {
	f.camera = p
	return nil
}

type memStore struct {
	docs  map[config.CameraProfile]config.Tunables
	saves []config.CameraProfile
}

func newMemStore() *memStore { return &memStore{docs: map[config.CameraProfile]config.Tunables{}} }

func (m *memStore) Load(p config.CameraProfile) config.Tunables {
	if t, ok := m.docs[p]; ok {
		return t
	}
	return config.DefaultTunables()
}

func (m *memStore) Save(p config.CameraProfile, t config.Tunables) error {
	m.docs[p] = t
	m.saves = append(m.saves, p)
	return nil
}

func newTestController(act *fakeActuator, store *memStore) *Controller {
	return NewController(discardLogger, act, store, 640, 360, config.ProfileFront)
}

func TestToggleArmTakesOffThenLands(t *testing.T) {
	act := &fakeActuator{onGround: true}
	c := newTestController(act, newMemStore())
	if err := c.Handle(CmdToggleArm); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if c.Status().State != StateAirborne {
		t.Fatalf("expected airborne, got %v", c.Status().State)
	}
	c.SetVelocity(control.VelocityCommand{VX: 0.5})
	if err := c.Handle(CmdToggleArm); err != nil {
		t.Fatalf("disarm: %v", err)
	}
	if c.Status().State != StateLanded || !c.Velocity().IsZero() {
		t.Fatalf("expected landed with zero velocity, got %+v %v", c.Status(), c.Velocity())
	}
	if got := strings.Join(act.calls, ","); got != "takeoff,land" {
		t.Fatalf("unexpected actuator calls %q", got)
	}
}

func TestToggleArmLandFailureKeepsState(t *testing.T) {
	act := &fakeActuator{onGround: false, failLand: true}
	c := newTestController(act, newMemStore())
	if c.Status().State != StateAirborne {
		t.Fatalf("controller should adopt airborne state from actuator")
	}
	if err := c.Handle(CmdToggleArm); err == nil {
		t.Fatalf("expected land error")
	}
	if c.Status().State != StateAirborne {
		t.Fatalf("state changed despite failed land")
	}
}

func TestFollowAndAutoLandAreIndependent(t *testing.T) {
	c := newTestController(&fakeActuator{onGround: true}, newMemStore())
	var seen []Status
	c.AddListener(func(_, next Status) { seen = append(seen, next) })

	_ = c.Handle(CmdToggleFollow)
	_ = c.Handle(CmdToggleAutoLand)
	_ = c.Handle(CmdToggleFollow)
	st := c.Status()
	if st.Follow || !st.AutoLand {
		t.Fatalf("unexpected status %+v", st)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
}

func TestShouldSteerRequiresFollowAndDetection(t *testing.T) {
	c := newTestController(&fakeActuator{onGround: true}, newMemStore())
	if c.ShouldSteer(true) {
		t.Fatalf("follow off must not steer")
	}
	_ = c.Handle(CmdToggleFollow)
	if !c.ShouldSteer(true) || c.ShouldSteer(false) {
		t.Fatalf("follow on should steer only when detected")
	}
}

func TestNudgesSetAxisAndHoverClears(t *testing.T) {
	c := newTestController(&fakeActuator{onGround: true}, newMemStore())
	for _, cmd := range []Command{CmdForward, CmdYawRight, CmdStrafeLeft, CmdDown} {
		_ = c.Handle(cmd)
	}
	want := control.VelocityCommand{VX: 1, VY: 1, VZ: -1, YawRate: -1}
	if c.Velocity() != want {
		t.Fatalf("velocity %v want %v", c.Velocity(), want)
	}
	_ = c.Handle(CmdBackward)
	if c.Velocity().VX != -1 {
		t.Fatalf("backward should overwrite vx")
	}
	_ = c.Handle(CmdHover)
	if !c.Velocity().IsZero() {
		t.Fatalf("hover should zero velocity")
	}
}

func TestPassThroughCommands(t *testing.T) {
	act := &fakeActuator{onGround: true, noFlatTrim: true}
	c := newTestController(act, newMemStore())
	if err := c.Handle(CmdCalibrate); err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if err := c.Handle(CmdFlatTrim); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	_ = c.Handle(CmdEmergency)
	if got := strings.Join(act.calls, ","); got != "calibrate,emergency" {
		t.Fatalf("unexpected calls %q", got)
	}
}

func TestSwitchCameraPersistsAndLoads(t *testing.T) {
	store := newMemStore()
	bottom := config.DefaultTunables().With(config.TunableHueLow, 90)
	store.docs[config.ProfileBottom] = bottom
	act := &fakeActuator{onGround: true}
	c := newTestController(act, store)

	var got []config.CameraProfile
	c.AddTunablesListener(func(p config.CameraProfile, _ config.Tunables) { got = append(got, p) })

	c.SetTunable(config.TunableHueHigh, 42)
	frontEdited := c.Tunables()
	if err := c.Handle(CmdSwitchCamera); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if c.Status().Profile != config.ProfileBottom || act.camera != config.ProfileBottom {
		t.Fatalf("profile not switched: %+v camera=%v", c.Status(), act.camera)
	}
	if store.docs[config.ProfileFront] != frontEdited {
		t.Fatalf("front tunables not persisted")
	}
	if c.Tunables() != bottom {
		t.Fatalf("bottom tunables not loaded: %+v", c.Tunables())
	}

	if err := c.Handle(CmdSwitchCamera); err != nil {
		t.Fatalf("switch back: %v", err)
	}
	if c.Tunables() != frontEdited {
		t.Fatalf("front tunables contaminated: %+v", c.Tunables())
	}
	if store.docs[config.ProfileBottom] != bottom {
		t.Fatalf("bottom tunables contaminated")
	}
	if len(got) != 3 || got[1] != config.ProfileBottom || got[2] != config.ProfileFront {
		t.Fatalf("unexpected tunables notifications %v", got)
	}
}

func TestRequestLandOnlyWhenAirborne(t *testing.T) {
	act := &fakeActuator{onGround: true}
	c := newTestController(act, newMemStore())
	c.RequestLand()
	if len(act.calls) != 0 {
		t.Fatalf("landed vehicle should not be told to land")
	}
	_ = c.Handle(CmdToggleArm)
	c.RequestLand()
	c.RequestLand()
	if got := strings.Join(act.calls, ","); got != "takeoff,land" {
		t.Fatalf("unexpected calls %q", got)
	}
	if c.Status().State != StateLanded {
		t.Fatalf("expected landed")
	}
}

func TestQuitAndShutdownSavesActiveProfile(t *testing.T) {
	store := newMemStore()
	c := newTestController(&fakeActuator{onGround: true}, store)
	c.SetTunable(config.TunableAreaMax, 77)
	_ = c.Handle(CmdQuit)
	if !c.QuitRequested() {
		t.Fatalf("quit not recorded")
	}
	if err := c.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if store.docs[config.ProfileFront].MaxArea != 77 {
		t.Fatalf("active tunables not saved")
	}
}

func TestSetTunableClampsAndSkipsNoop(t *testing.T) {
	c := newTestController(&fakeActuator{onGround: true}, newMemStore())
	n := 0
	c.AddTunablesListener(func(config.CameraProfile, config.Tunables) { n++ })
	c.SetTunable(config.TunableSatLow, 999)
	c.SetTunable(config.TunableSatLow, 255)
	if c.Tunables().SatLow != config.SatMax || n != 1 {
		t.Fatalf("sat low=%d notifications=%d", c.Tunables().SatLow, n)
	}
}

func TestKeyMapAndHelp(t *testing.T) {
	if c, ok := CommandForKey('W'); !ok || c != CmdForward {
		t.Fatalf("upper-case W should map to forward")
	}
	if c, _ := CommandForKey(KeyEscape); c != CmdQuit {
		t.Fatalf("escape should quit")
	}
	if _, ok := CommandForKey('z'); ok {
		t.Fatalf("z is unbound")
	}
	help := KeyHelp()
	if len(help) != len(KeyMap) || !strings.HasPrefix(help[0], "space") {
		t.Fatalf("unexpected help %v", help)
	}
	if CmdFlatTrim.String() != "flat-trim" || Command(99).String() != "command(99)" {
		t.Fatalf("unexpected command names")
	}
}
