package flight

import (
	"fmt"
	"sort"
)

// Command is a discrete user command.
type Command int

const (
	CmdNone Command = iota
	CmdToggleArm
	CmdForward
	CmdBackward
	CmdYawLeft
	CmdYawRight
	CmdStrafeLeft
	CmdStrafeRight
	CmdUp
	CmdDown
	CmdHover
	CmdCalibrate
	CmdFlatTrim
	CmdEmergency
	CmdToggleFollow
	CmdToggleAutoLand
	CmdSwitchCamera
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:           "none",
	CmdToggleArm:      "arm",
	CmdForward:        "forward",
	CmdBackward:       "backward",
	CmdYawLeft:        "yaw-left",
	CmdYawRight:       "yaw-right",
	CmdStrafeLeft:     "strafe-left",
	CmdStrafeRight:    "strafe-right",
	CmdUp:             "up",
	CmdDown:           "down",
	CmdHover:          "hover",
	CmdCalibrate:      "calibrate",
	CmdFlatTrim:       "flat-trim",
	CmdEmergency:      "emergency",
	CmdToggleFollow:   "follow",
	CmdToggleAutoLand: "autoland",
	CmdSwitchCamera:   "camera",
	CmdQuit:           "quit",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// KeyEscape is the rune used for the Escape key.
const KeyEscape rune = 27

// KeyMap binds keyboard runes to commands.
var KeyMap = map[rune]Command{
	' ':       CmdToggleArm,
	'w':       CmdForward,
	's':       CmdBackward,
	'a':       CmdYawLeft,
	'd':       CmdYawRight,
	'q':       CmdStrafeLeft,
	'e':       CmdStrafeRight,
	'i':       CmdUp,
	'k':       CmdDown,
	'h':       CmdHover,
	'v':       CmdCalibrate,
	't':       CmdFlatTrim,
	'p':       CmdEmergency,
	'f':       CmdToggleFollow,
	'l':       CmdToggleAutoLand,
	'c':       CmdSwitchCamera,
	KeyEscape: CmdQuit,
}

// CommandForKey returns the command bound to r. Letters match either case.
func CommandForKey(r rune) (Command, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	c, ok := KeyMap[r]
	return c, ok
}

// KeyName returns a printable name for a bound rune.
func KeyName(r rune) string {
	switch r {
	case ' ':
		return "space"
	case KeyEscape:
		return "esc"
	}
	return string(r)
}

// KeyHelp returns one "key  command" line per binding, sorted by command.
func KeyHelp() []string {
	type kv struct {
		r rune
		c Command
	}
	pairs := make([]kv, 0, len(KeyMap))
	for r, c := range KeyMap {
		pairs = append(pairs, kv{r, c})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].c < pairs[j].c })
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%-6s %s", KeyName(p.r), p.c))
	}
	return lines
}
