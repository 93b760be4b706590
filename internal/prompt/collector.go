// Package prompt collects and validates the operator's answers on the
// console.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"nichefold/pkg/niche"
)

// ForbiddenChars may not appear in a client name; the name becomes a folder.
const ForbiddenChars = `<>:"/\|?*`

var (
	ErrCancelled    = errors.New("operation cancelled")
	ErrEmptyName    = errors.New("folder name cannot be empty")
	ErrInvalidChars = errors.New("folder name contains invalid characters")
)

type line struct {
	text string
	err  error
}

// Collector reads one answer per line from in and writes prompts to out.
type Collector struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan line
	done  bool

	red    *color.Color
	yellow *color.Color
}

func NewCollector(in io.Reader, out io.Writer) *Collector {
	return &Collector{
		in:     bufio.NewReader(in),
		out:    out,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}
}

// readLine blocks until a line arrives, the input ends or ctx is cancelled.
// Reading happens on a separate goroutine so an interrupt can abandon a
// blocked read.
func (c *Collector) readLine(ctx context.Context) (string, error) {
	if c.done {
		return "", ErrCancelled
	}
	if c.lines == nil {
		c.lines = make(chan line)
		go c.pump()
	}

	select {
	case <-ctx.Done():
		c.done = true
		return "", ErrCancelled
	case l, ok := <-c.lines:
		if !ok || l.err != nil {
			c.done = true
			return "", ErrCancelled
		}
		return l.text, nil
	}
}

func (c *Collector) pump() {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		if text != "" {
			c.lines <- line{text: strings.TrimRight(text, "\r\n")}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.lines <- line{err: err}
			}
			return
		}
	}
}

// SelectNiche shows the menu and loops until a listed code is entered.
func (c *Collector) SelectNiche(ctx context.Context, niches []niche.Definition) (niche.Definition, error) {
	fmt.Fprintln(c.out, "\n--- 💻 Project Niche Selection ---")
	for _, n := range niches {
		fmt.Fprintf(c.out, "| %s. %s\n", n.Code, n.Name)
	}
	fmt.Fprintln(c.out, "---------------------------------")

	for {
		fmt.Fprint(c.out, "Enter the number for the client's niche: ")
		answer, err := c.readLine(ctx)
		if err != nil {
			return niche.Definition{}, err
		}

		choice := strings.TrimSpace(answer)
		for _, n := range niches {
			if n.Code == choice {
				return n, nil
			}
		}
		c.red.Fprintln(c.out, "❌ Invalid selection. Please enter a number from the list.")
	}
}

// ClientName loops until a usable folder name is entered.
func (c *Collector) ClientName(ctx context.Context, nicheName string) (string, error) {
	for {
		fmt.Fprintf(c.out, "\nEnter the Client Name for the %s project (e.g., Smith Realty): ", nicheName)
		answer, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}

		name := strings.TrimSpace(answer)
		switch err := ValidateClientName(name); {
		case err == nil:
			return name, nil
		case errors.Is(err, ErrInvalidChars):
			c.red.Fprintln(c.out, "❌ Folder name contains invalid characters. Please use letters, numbers, and spaces.")
		default:
			c.red.Fprintln(c.out, "❌ Folder name cannot be empty. Please try again.")
		}
	}
}

// Confirm asks a yes/no question. Only "y" counts as yes.
func (c *Collector) Confirm(ctx context.Context, question string) (bool, error) {
	c.yellow.Fprintf(c.out, "%s (y/n): ", question)
	answer, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

// ValidateClientName reports whether name can be used as a project folder.
func ValidateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if i := strings.IndexAny(name, ForbiddenChars); i >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidChars, name[i])
	}
	return nil
}
