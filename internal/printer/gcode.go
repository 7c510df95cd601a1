package printer

import (
	"strconv"
	"strings"
)

// Command is a single G-code command. The textual encoding only exists at the
// transport boundary; everything above it works with Command values.
type Command struct {
	Code   string
	Params []Param
}

// Param is a single G-code parameter, e.g. S200.
type Param struct {
	Letter byte
	Value  float64
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Code)
	for _, p := range c.Params {
		b.WriteByte(' ')
		b.WriteByte(p.Letter)
		b.WriteString(strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
	return b.String()
}

// Script is a sequence of commands sent to the printer in one request.
type Script []Command

func (s Script) String() string {
	lines := make([]string, len(s))
	for i, c := range s {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// slow reports whether the script resumes the print or touches the heaters.
// Those commands can block until the printer has (partially) heated up and
// need a longer timeout than plain state changes.
func (s Script) slow() bool {
	for _, c := range s {
		switch c.Code {
		case cmdResume, cmdSetExtruderTemp, cmdSetBedTemp:
			return true
		}
	}
	return false
}

const (
	cmdPause           = "PAUSE"
	cmdResume          = "RESUME"
	cmdSetExtruderTemp = "M104"
	cmdSetBedTemp      = "M140"
)

func setExtruderTemp(celsius float64) Command {
	return Command{Code: cmdSetExtruderTemp, Params: []Param{{Letter: 'S', Value: celsius}}}
}

func setBedTemp(celsius float64) Command {
	return Command{Code: cmdSetBedTemp, Params: []Param{{Letter: 'S', Value: celsius}}}
}
