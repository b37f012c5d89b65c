package main

import (
	"bytes"
	"fmt"
	"strings"
)

// Emitter writes fox32 assembly syntax into a buffer. It only knows
// formatting; every translation decision happens in the caller.
type Emitter struct {
	output bytes.Buffer
}

func (emitter *Emitter) Comment(text string) {
	fmt.Fprintf(&emitter.output, "; %s\n", text)
}

func (emitter *Emitter) Include(path string) {
	fmt.Fprintf(&emitter.output, "#include \"%s\"\n", path)
}

func (emitter *Emitter) Label(name string) {
	fmt.Fprintf(&emitter.output, "%s:\n", name)
}

func (emitter *Emitter) Instruction(mnemonic string, operands ...string) {
	emitter.output.WriteByte('\t')
	emitter.output.WriteString(mnemonic)
	if len(operands) > 0 {
		emitter.output.WriteByte(' ')
		emitter.output.WriteString(strings.Join(operands, ", "))
	}
	emitter.output.WriteByte('\n')
}

// ConditionalJump writes a jmp guarded by a fox32 condition prefix, to be
// placed right after the cmp that sets the flags.
func (emitter *Emitter) ConditionalJump(condition, target string) {
	fmt.Fprintf(&emitter.output, "\t%s jmp %s\n", condition, target)
}

func (emitter *Emitter) DataWord(value string) {
	fmt.Fprintf(&emitter.output, "\tdata.32 %s\n", value)
}

// DataString writes a string literal followed by its null terminator.
func (emitter *Emitter) DataString(text string) {
	fmt.Fprintf(&emitter.output, "\tdata.str \"%s\"\n", text)
	emitter.output.WriteString("\tdata.8 0\n")
}

func (emitter *Emitter) String() string {
	return emitter.output.String()
}
