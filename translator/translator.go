package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"riscv2fox32/util"
)

// A line oriented translator from a RISC-V assembly subset to fox32
// assembly. Every input line expands independently into a small number of
// fox32 lines, in input order; the only state carried across lines is the
// synthetic label counter used by call expansions. Translation halts at the
// first error, because silently emitting wrong code is worse than stopping.

var (
	ErrUnknownLine            = errors.New("unrecognized line")
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	ErrUnknownRegister        = errors.New("unknown register")
)

type Translator struct {
	emitter     Emitter
	line        int
	callLabelID int
	debug       bool
}

func NewTranslator(debug bool) *Translator {
	return &Translator{debug: debug}
}

// WriteHeader emits the fixed file prologue: one comment identifying the
// tool, the mandatory start include and any caller supplied extras.
func (translator *Translator) WriteHeader(includes []string) {
	translator.emitter.Comment("generated by riscv2fox32")
	translator.emitter.Include("start.asm")
	for _, include := range includes {
		translator.emitter.Include(include)
	}
}

// Parse consumes the whole input, one line at a time, in order. The first
// failing line aborts the run with its 1-based line number attached.
func (translator *Translator) Parse(rd io.Reader) error {
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		translator.line++
		if err := translator.translateLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", translator.line, err)
		}
	}
	return scanner.Err()
}

// translateLine classifies one physical line and dispatches it. The checks
// run in priority order: blank/comment, directive, label definition,
// instruction. A line matching none of the shapes is a hard error.
func (translator *Translator) translateLine(raw string) error {
	line := strings.TrimSpace(raw)
	if len(line) == 0 || line[0] == '#' {
		return nil
	}
	if translator.debug {
		translator.emitter.Comment(line)
	}
	if index := strings.IndexByte(line, '#'); index != -1 && !strings.Contains(line, "\"") {
		line = strings.TrimSpace(line[:index])
	}
	if line[0] == '.' && !strings.HasSuffix(line, ":") {
		return translator.translateDirective(line)
	}
	if name, ok := labelDefinition(line); ok {
		translator.emitter.Label(rewriteLabel(name))
		return nil
	}
	mnemonic, operands, ok := splitInstruction(line)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLine, raw)
	}
	return translator.translateInstruction(mnemonic, operands)
}

// translateDirective handles the accepted directive micro-syntax.
// Sectioning directives are dropped, the data directives emit fox32 data
// and ".set name," defines a label.
func (translator *Translator) translateDirective(line string) error {
	directive := line
	rest := ""
	if index := strings.IndexAny(line, " \t"); index != -1 {
		directive, rest = line[:index], strings.TrimSpace(line[index+1:])
	}
	switch directive {
	case ".text", ".data", ".globl", ".global", ".section", ".align":
		return nil
	case ".word":
		if len(rest) == 0 {
			return fmt.Errorf("%w: %s", ErrUnknownLine, line)
		}
		translator.emitter.DataWord(normalizeOperand(rest))
		return nil
	case ".string", ".asciz":
		text, ok := quotedText(rest)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownLine, line)
		}
		translator.emitter.DataString(text)
		return nil
	case ".set":
		name := rest
		if index := strings.IndexByte(rest, ','); index != -1 {
			name = strings.TrimSpace(rest[:index])
		}
		if len(name) == 0 {
			return fmt.Errorf("%w: %s", ErrUnknownLine, line)
		}
		translator.emitter.Label(rewriteLabel(name))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownLine, line)
}

// labelDefinition matches a bare "name:" line.
func labelDefinition(line string) (string, bool) {
	if !strings.HasSuffix(line, ":") {
		return "", false
	}
	name := line[:len(line)-1]
	if len(name) == 0 {
		return "", false
	}
	for i := 0; i < len(name); i++ {
		if !util.IsLabelCharacter(name[i]) {
			return "", false
		}
	}
	return name, true
}

// splitInstruction matches "mnemonic" or "mnemonic operand-list". The
// mnemonic is the first whitespace delimited token and must be a letter
// followed by letters or digits; the operands are the remainder split on
// commas, each trimmed of surrounding whitespace, empty ones dropped.
func splitInstruction(line string) (string, []string, bool) {
	mnemonic := line
	rest := ""
	if index := strings.IndexAny(line, " \t"); index != -1 {
		mnemonic, rest = line[:index], line[index+1:]
	}
	if len(mnemonic) == 0 || !util.IsLetter(mnemonic[0]) {
		return "", nil, false
	}
	for i := 1; i < len(mnemonic); i++ {
		if !util.IsLetter(mnemonic[i]) && !util.IsNumber(mnemonic[i]) {
			return "", nil, false
		}
	}
	var operands []string
	for _, operand := range strings.Split(rest, ",") {
		operand = strings.TrimSpace(operand)
		if len(operand) != 0 {
			operands = append(operands, operand)
		}
	}
	return mnemonic, operands, true
}

// quotedText strips the surrounding double quotes of a directive argument.
func quotedText(token string) (string, bool) {
	if len(token) < 2 || token[0] != '"' || token[len(token)-1] != '"' {
		return "", false
	}
	return token[1 : len(token)-1], true
}

func (translator *Translator) Output() string {
	return translator.emitter.String()
}

func (translator *Translator) SaveTo(filepath string) error {
	return os.WriteFile(filepath, []byte(translator.emitter.String()), 0666)
}
