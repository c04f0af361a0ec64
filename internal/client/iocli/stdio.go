package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх stdin/stdout
type Stdio struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

// NewStdio создает IO поверх стандартных потоков процесса
func NewStdio() IO {
	return newStdio(os.Stdin, os.Stdout)
}

func newStdio(in io.Reader, out io.Writer) *Stdio {
	// Один bufio.Reader на весь процесс, иначе буферизованный ввод теряется между вызовами
	return &Stdio{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает prompt и читает строку без завершающих пробелов
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword читает пароль без эха, если stdin является терминалом.
// При перенаправленном вводе пароль читается как обычная строка
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	f, ok := s.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(f.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
