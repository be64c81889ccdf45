// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package prompt asks the user yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before a yes or no was given.
var ErrNoAnswer = errors.New("no answer given")

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// YesNo prints question and keeps asking until the answer is a yes or a no.
func (p *Prompter) YesNo(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (yes/no)\n", question)

	for {
		line, err := p.in.ReadString('\n')
		if answer, ok := parse(line); ok {
			return answer, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		fmt.Fprintln(p.out, "yes/no?")
	}
}

func parse(answer string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	return false, false
}
