package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/oriaxos/oriax/internal/pointer"
)

// ParseString parses a script held in memory.
func ParseString(src string) ([]Command, error) {
	return Parse(strings.NewReader(src))
}

// Parse reads a script and checks every command's arity and argument
// types. The first malformed line stops parsing with a *ParseError.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields, err := shlex.Split(text, true)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
		if len(fields) == 0 {
			continue
		}
		typ, ok := commandTypes[strings.ToLower(fields[0])]
		if !ok {
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("unknown command %q", fields[0])}
		}
		cmd := Command{Type: typ, Args: fields[1:], Line: line}
		if err := check(cmd); err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

func check(c Command) error {
	args := c.Args
	switch c.Type {
	case CommandOpen:
		if len(args) == 0 {
			return fmt.Errorf("Open needs an app id")
		}
		for _, a := range args[1:] {
			if k, _, ok := strings.Cut(a, "="); ok && k == "" {
				return fmt.Errorf("prop %q has no key", a)
			}
		}
	case CommandClose, CommandFocus, CommandMinimize, CommandRestore, CommandMaximize:
		if len(args) != 1 {
			return fmt.Errorf("%s takes one window reference", c.Type)
		}
		return checkRef(args[0])
	case CommandMove, CommandResize:
		if len(args) != 3 {
			return fmt.Errorf("%s takes a window reference and two numbers", c.Type)
		}
		if err := checkRef(args[0]); err != nil {
			return err
		}
		return checkInts(args[1:])
	case CommandDrag:
		if len(args) != 5 && !(len(args) == 6 && args[5] == "cancel") {
			return fmt.Errorf("Drag takes a window reference, x0 y0 x1 y1 and an optional cancel")
		}
		if err := checkRef(args[0]); err != nil {
			return err
		}
		return checkInts(args[1:5])
	case CommandResizeDrag:
		if len(args) != 6 {
			return fmt.Errorf("ResizeDrag takes a window reference, an edge and x0 y0 x1 y1")
		}
		if err := checkRef(args[0]); err != nil {
			return err
		}
		if _, ok := pointer.ParseEdge(args[1]); !ok {
			return fmt.Errorf("unknown edge %q", args[1])
		}
		return checkInts(args[2:])
	case CommandCycle:
		if len(args) > 1 || (len(args) == 1 && args[0] != "back") {
			return fmt.Errorf("Cycle takes no arguments or \"back\"")
		}
	case CommandExpect:
		return checkExpect(args)
	}
	return nil
}

func checkExpect(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("Expect needs focused, count, geometry or state")
	}
	rest := args[1:]
	switch args[0] {
	case "focused":
		if len(rest) != 1 {
			return fmt.Errorf("Expect focused takes a window reference or none")
		}
		if rest[0] == "none" {
			return nil
		}
		return checkRef(rest[0])
	case "count":
		if len(rest) != 1 {
			return fmt.Errorf("Expect count takes one number")
		}
		return checkInts(rest)
	case "geometry":
		if len(rest) != 5 {
			return fmt.Errorf("Expect geometry takes a window reference and x y w h")
		}
		if err := checkRef(rest[0]); err != nil {
			return err
		}
		return checkInts(rest[1:])
	case "state":
		if len(rest) != 2 {
			return fmt.Errorf("Expect state takes a window reference and a state")
		}
		if err := checkRef(rest[0]); err != nil {
			return err
		}
		switch rest[1] {
		case "normal", "minimized", "maximized", "closed":
			return nil
		}
		return fmt.Errorf("unknown state %q", rest[1])
	}
	return fmt.Errorf("unknown expectation %q", args[0])
}

func checkRef(ref string) error {
	if ref == "focused" {
		return nil
	}
	n, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return fmt.Errorf("window reference %q must be $N or focused", ref)
	}
	if i, err := strconv.Atoi(n); err != nil || i < 1 {
		return fmt.Errorf("window reference %q must be $N with N >= 1", ref)
	}
	return nil
}

func checkInts(args []string) error {
	for _, a := range args {
		if _, err := strconv.Atoi(a); err != nil {
			return fmt.Errorf("%q is not a number", a)
		}
	}
	return nil
}
