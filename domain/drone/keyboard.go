package drone

import (
	"fmt"
	"log/slog"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/keyboard"

	"github.com/soocke/blob-follower/domain/flight"
)

// Keyboard turns terminal key presses into flight commands for headless
// runs. Commands are buffered on a channel that the processing loop drains
// once per iteration; presses beyond the buffer are dropped.
type Keyboard struct {
	logger   *slog.Logger
	driver   *keyboard.Driver
	robot    *gobot.Robot
	commands chan flight.Command
}

// NewKeyboard returns a keyboard reader with room for buffer pending
// commands.
func NewKeyboard(logger *slog.Logger, buffer int) *Keyboard {
	if buffer <= 0 {
		buffer = 16
	}
	return &Keyboard{logger: logger, commands: make(chan flight.Command, buffer)}
}

// Start puts the terminal in raw mode and begins reading keys.
func (k *Keyboard) Start() error {
	k.driver = keyboard.NewDriver()
	k.driver.On(keyboard.Key, func(data interface{}) {
		ev, ok := data.(keyboard.KeyEvent)
		if !ok {
			return
		}
		k.dispatch(ev.Key)
	})
	k.robot = gobot.NewRobot("keyboard",
		[]gobot.Connection{},
		[]gobot.Device{k.driver},
	)
	if err := k.robot.Start(false); err != nil {
		return fmt.Errorf("drone: start keyboard: %w", err)
	}
	return nil
}

// Stop restores the terminal.
func (k *Keyboard) Stop() error {
	if k.robot == nil {
		return nil
	}
	return k.robot.Stop()
}

// Commands returns the command channel.
func (k *Keyboard) Commands() <-chan flight.Command { return k.commands }

// dispatch maps a gobot key code onto a command. gobot reports letters as
// their lower-case ASCII code, Spacebar as 32 and Escape as 27,
// which is flight.KeyEscape.
func (k *Keyboard) dispatch(key int) {
	r := rune(key)
	if key == keyboard.Spacebar {
		r = ' '
	}
	cmd, ok := flight.CommandForKey(r)
	if !ok {
		return
	}
	select {
	case k.commands <- cmd:
	default:
		if k.logger != nil {
			k.logger.Warn("keyboard command dropped", "command", cmd.String())
		}
	}
}
