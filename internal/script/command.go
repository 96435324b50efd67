// Package script parses and runs line-oriented window manager scripts.
//
//	# comments start with '#'
//	Open notes "Shopping list" text=eggs
//	Move $1 4 2
//	Drag $1 5 1 20 6
//	Expect focused $1
//
// A window reference is $N for the Nth successful Open (1-based) or
// "focused" for whichever window holds focus when the command runs.
package script

import (
	"fmt"
	"strings"
)

// CommandType names a script command.
type CommandType string

const (
	CommandOpen       CommandType = "Open"
	CommandClose      CommandType = "Close"
	CommandFocus      CommandType = "Focus"
	CommandMinimize   CommandType = "Minimize"
	CommandRestore    CommandType = "Restore"
	CommandMaximize   CommandType = "Maximize"
	CommandMove       CommandType = "Move"
	CommandResize     CommandType = "Resize"
	CommandDrag       CommandType = "Drag"
	CommandResizeDrag CommandType = "ResizeDrag"
	CommandCycle      CommandType = "Cycle"
	CommandExpect     CommandType = "Expect"
)

var commandTypes = map[string]CommandType{}

func init() {
	for _, c := range []CommandType{
		CommandOpen, CommandClose, CommandFocus, CommandMinimize, CommandRestore,
		CommandMaximize, CommandMove, CommandResize, CommandDrag, CommandResizeDrag,
		CommandCycle, CommandExpect,
	} {
		commandTypes[strings.ToLower(string(c))] = c
	}
}

// Command is one parsed script line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return fmt.Sprintf("%s %s", c.Type, strings.Join(c.Args, " "))
}

// ParseError reports a malformed script line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ExecError reports a command that failed while running.
type ExecError struct {
	Command Command
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Command.Line, e.Command.Type, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
