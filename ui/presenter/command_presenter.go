package presenter

import (
	"log/slog"

	"github.com/soocke/blob-follower/domain/flight"
)

// PreviewToggle flips preview rendering.
type PreviewToggle interface {
	Toggle() bool
}

// CommandView updates UI elements affected by commands.
type CommandView interface {
	PreviewReset()
	SetMessage(string)
}

// CommandPresenter routes key presses and button clicks to the controller.
type CommandPresenter struct {
	ctrl    flight.CommandHandler
	preview PreviewToggle
	view    CommandView
	logger  *slog.Logger
	onQuit  func()
}

func NewCommandPresenter(ctrl flight.CommandHandler, preview PreviewToggle, view CommandView, logger *slog.Logger, onQuit func()) *CommandPresenter {
	return &CommandPresenter{ctrl: ctrl, preview: preview, view: view, logger: logger, onQuit: onQuit}
}

// Handle executes cmd. Failures are logged and shown; they never stop the
// loop. CmdQuit additionally invokes the quit callback.
func (c *CommandPresenter) Handle(cmd flight.Command) {
	if c == nil || c.ctrl == nil {
		return
	}
	if err := c.ctrl.Handle(cmd); err != nil {
		if c.logger != nil {
			c.logger.Warn("command failed", "command", cmd.String(), "error", err)
		}
		if c.view != nil {
			c.view.SetMessage(cmd.String() + ": " + err.Error())
		}
	} else if c.view != nil {
		c.view.SetMessage("")
	}
	if cmd == flight.CmdQuit && c.onQuit != nil {
		c.onQuit()
	}
}

// HandleKey maps a key to its command. It reports whether the key was bound.
func (c *CommandPresenter) HandleKey(r rune) bool {
	cmd, ok := flight.CommandForKey(r)
	if !ok {
		if c != nil && c.logger != nil {
			c.logger.Debug("unbound key", "key", string(r))
		}
		return false
	}
	c.Handle(cmd)
	return true
}

// Drain handles every command already queued on ch without blocking.
func (c *CommandPresenter) Drain(ch <-chan flight.Command) {
	for {
		select {
		case cmd, ok := <-ch:
			if !ok {
				return
			}
			c.Handle(cmd)
		default:
			return
		}
	}
}

// TogglePreview switches preview rendering, clearing the images when it is
// turned off.
func (c *CommandPresenter) TogglePreview() {
	if c == nil || c.preview == nil {
		return
	}
	if !c.preview.Toggle() && c.view != nil {
		c.view.PreviewReset()
	}
}
