// Package pinctrl shells out to the Raspberry Pi `pinctrl` utility to
// inspect and drive the GPIO lines thermod's relay actuators sit on.
// Reads go through `pinctrl get`/`pinctrl lev`, writes through
// `pinctrl set`; nothing here keeps state, every call hits the tool.
package pinctrl

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// State is one line of `pinctrl get` output, parsed.
type State struct {
	Number int
	Mode   string // "ip", "op", "no", "a0".."a5"
	Pull   string // "pu", "pd", "pn"
	Drive  string // "dh", "dl", or empty for inputs
	Level  string // "hi", "lo", "--"
	Label  string // trailing comment, typically "GPIO<n> = ..."
}

// execPinctrl runs the pinctrl binary; tests swap it out so the
// package can be exercised without real hardware.
var execPinctrl = func(args ...string) ([]byte, error) {
	out, err := exec.Command("pinctrl", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("pinctrl %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// ReadAllPins returns the State of every pin `pinctrl get` reports,
// keyed by pin number. Lines that don't parse are skipped.
func ReadAllPins() (map[int]State, error) {
	out, err := execPinctrl("get")
	if err != nil {
		return nil, err
	}

	states := make(map[int]State)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if st, ok := parseLine(scanner.Text()); ok {
			states[st.Number] = st
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning pinctrl output: %w", err)
	}
	return states, nil
}

// ReadPin returns the State of a single pin.
func ReadPin(pin int) (State, error) {
	states, err := ReadAllPins()
	if err != nil {
		return State{}, err
	}
	st, ok := states[pin]
	if !ok {
		return State{}, fmt.Errorf("pin %d not present in pinctrl output", pin)
	}
	return st, nil
}

// ReadLevel reads the logic level of one pin via `pinctrl lev`, which
// is cheaper than parsing the whole `pinctrl get` table.
func ReadLevel(pin int) (bool, error) {
	out, err := execPinctrl("lev", strconv.Itoa(pin))
	if err != nil {
		return false, err
	}
	return parseLevel(string(out))
}

// SetPin applies pinctrl set options to a pin.
// SetPin(10, "op", "pn", "dh") makes pin 10 an output, no pull,
// driven high.
func SetPin(pin int, opts ...string) error {
	args := append([]string{"set", strconv.Itoa(pin)}, opts...)
	_, err := execPinctrl(args...)
	return err
}

func parseLevel(out string) (bool, error) {
	switch strings.TrimSpace(out) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected pinctrl lev output: %q", strings.TrimSpace(out))
	}
}

// parseLine parses one `pinctrl get` line, shaped like
//
//	 4: ip    pu | hi // GPIO4 = input
//	26: op dl pn | lo // GPIO26 = output
func parseLine(line string) (State, bool) {
	head, tail, ok := strings.Cut(line, "|")
	if !ok {
		return State{}, false
	}
	level, label, _ := strings.Cut(tail, "//")

	fields := strings.Fields(head)
	if len(fields) < 2 || !strings.HasSuffix(fields[0], ":") {
		return State{}, false
	}
	number, err := strconv.Atoi(strings.TrimSuffix(fields[0], ":"))
	if err != nil {
		return State{}, false
	}

	st := State{
		Number: number,
		Mode:   fields[1],
		Level:  strings.TrimSpace(level),
		Label:  strings.TrimSpace(label),
	}
	for _, f := range fields[2:] {
		switch f {
		case "pu", "pd", "pn":
			if st.Pull == "" {
				st.Pull = f
			}
		case "dh", "dl":
			if st.Drive == "" {
				st.Drive = f
			}
		}
	}
	return st, true
}
