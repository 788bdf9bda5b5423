package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// errQuit ends the session at the user's request or at end of input.
var errQuit = errors.New("wizard: quit")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the trimmed answer.
func (p *prompter) ask(label string) (string, error) {
	color.New(color.FgCyan).Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// yesNo asks a y/n question until it gets an answer. Blank means def.
func (p *prompter) yesNo(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		ans, err := p.ask(fmt.Sprintf("%s [%s]", label, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(ans) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.warn("Please answer y or n")
	}
}

// choose asks for one of the keys in options and returns it. q always quits.
func (p *prompter) choose(label string, options ...string) (string, error) {
	for {
		ans, err := p.ask(label)
		if err != nil {
			return "", err
		}
		ans = strings.ToLower(ans)
		if ans == "q" || ans == "quit" {
			return "", errQuit
		}
		for _, o := range options {
			if ans == o {
				return o, nil
			}
		}
		p.warn(fmt.Sprintf("Please choose one of: %s", strings.Join(options, ", ")))
	}
}

func (p *prompter) warn(msg string) {
	color.New(color.FgYellow).Fprintf(p.out, "⚠️  %s\n", msg)
}

func (p *prompter) fail(msg string) {
	color.New(color.FgRed).Fprintf(p.out, "✗ %s\n", msg)
}

func (p *prompter) success(msg string) {
	color.New(color.FgGreen).Fprintf(p.out, "✓ %s\n", msg)
}
