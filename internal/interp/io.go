package interp

import (
	"bufio"
	"fmt"
	"io"
)

// IO is the host surface the interpreter talks to. Output writes one line
// of program output; GetInput reads one line of input with the trailing
// newline stripped.
type IO interface {
	Output(line string)
	GetInput() (string, error)
}

// consoleIO is the default IO implementation over a writer and a reader.
type consoleIO struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewConsoleIO creates an IO over the given streams.
func NewConsoleIO(out io.Writer, in io.Reader) IO {
	return &consoleIO{
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

func (c *consoleIO) Output(line string) {
	fmt.Fprintln(c.out, line)
}

func (c *consoleIO) GetInput() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}
