package main

import (
	"io"
	"sort"
	"strings"

	"github.com/peterh/liner"
)

// lineEditor is an interactive LineSource reading from the terminal, with
// history and completion of command names.
type lineEditor struct {
	*liner.State
	prompt string
}

func newLineEditor(prompt string, reg *Registry) *lineEditor {
	ed := &lineEditor{liner.NewLiner(), prompt}
	ed.SetCtrlCAborts(true)
	ed.SetTabCompletionStyle(liner.TabPrints)
	ed.SetCompleter(commandCompleter(reg))
	return ed
}

// ReadLine prompts for a line; an aborted prompt ends input like EOF does.
func (ed *lineEditor) ReadLine() (string, error) {
	line, err := ed.Prompt(ed.prompt)
	switch err {
	case nil:
		if strings.TrimSpace(line) != "" {
			ed.AppendHistory(line)
		}
		return line, nil
	case liner.ErrPromptAborted:
		return "", io.EOF
	default:
		return "", err
	}
}

// commandCompleter completes the command name at the start of a line. The
// registry is consulted on every completion, so defined names show up.
func commandCompleter(reg *Registry) func(line string) []string {
	return func(line string) (cs []string) {
		if strings.ContainsAny(line, " \t") {
			return nil
		}
		for _, name := range reg.Names() {
			if strings.HasPrefix(name, line) {
				cs = append(cs, name)
			}
		}
		sort.Strings(cs)
		return cs
	}
}
