package iocli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio is the terminal-backed IO: prompts and echoes go to standard output,
// input comes from standard input. Line input shares one buffered reader so
// text typed ahead of the next prompt is not lost between reads.
type Stdio struct {
	in *bufio.Reader
}

// NewStdio creates the terminal-backed IO.
func NewStdio() *Stdio {
	return &Stdio{}
}

func (s *Stdio) Println(a ...any) {
	fmt.Println(a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Write sends raw bytes to standard output, for renderers that take an
// io.Writer.
func (s *Stdio) Write(p []byte) (n int, err error) {
	return os.Stdout.Write(p)
}

// ReadInput prints the prompt and reads one line, trimmed of surrounding
// whitespace.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	if s.in == nil {
		s.in = bufio.NewReader(os.Stdin)
	}
	input, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword prints the prompt and reads a line with terminal echo off, so
// secret values never show on screen.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
