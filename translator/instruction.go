package main

import (
	"fmt"
	"strings"
)

// Translation of single decoded instructions. Every supported
// mnemonic/operand shape is a fixed rewrite rule; anything outside the
// enumeration fails immediately with the offending mnemonic and operands.

// arithmeticOps maps RISC-V arithmetic mnemonics to the fox32 operation.
// The register-immediate forms share the target operation with their
// register-register siblings because fox32 takes either kind of source.
var arithmeticOps = map[string]string{
	"add": "add", "addi": "add",
	"sub": "sub",
	"and": "and", "andi": "and",
	"or": "or", "ori": "or",
	"xor": "xor", "xori": "xor",
	"sll": "sla", "slli": "sla",
	"srl": "srl", "srli": "srl",
	"sra": "sra", "srai": "sra",
	"mul": "mul",
}

// loadOps and storeOps select the fox32 access width per mnemonic. The
// unsigned loads use movz so the upper destination bits are cleared.
var loadOps = map[string]string{
	"lw":  "mov",
	"lh":  "mov.16",
	"lb":  "mov.8",
	"lhu": "movz.16",
	"lbu": "movz.8",
}

var storeOps = map[string]string{
	"sw": "mov",
	"sh": "mov.16",
	"sb": "mov.8",
}

// branchCondition is the fox32 condition prefix used after a cmp, plus
// whether the compare operands must swap. Only ifz, ifnz, ifgt and iflteq
// are emitted, so less-than is greater-than with the operands reversed and
// greater-or-equal is less-or-equal with the operands reversed.
type branchCondition struct {
	condition string
	swap      bool
}

var branchConditions = map[string]branchCondition{
	"eq": {condition: "ifz", swap: false},
	"ne": {condition: "ifnz", swap: false},
	"gt": {condition: "ifgt", swap: false},
	"le": {condition: "iflteq", swap: false},
	"lt": {condition: "ifgt", swap: true},
	"ge": {condition: "iflteq", swap: true},
}

// luiShift is how far the upper-immediate form places its value into the
// word: lui fills bits 31:12.
const luiShift = 12

func (translator *Translator) translateInstruction(mnemonic string, operands []string) error {
	switch mnemonic {
	case "nop":
		if len(operands) != 0 {
			return translator.unsupported(mnemonic, operands)
		}
		translator.emitter.Instruction("nop")
		return nil
	case "add", "addi", "sub", "and", "andi", "or", "ori", "xor", "xori",
		"sll", "slli", "srl", "srli", "sra", "srai", "mul":
		return translator.translateArithmetic(mnemonic, operands)
	case "lw", "lh", "lb", "lhu", "lbu":
		return translator.translateLoad(mnemonic, operands)
	case "sw", "sh", "sb":
		return translator.translateStore(mnemonic, operands)
	case "j":
		if len(operands) != 1 {
			return translator.unsupported(mnemonic, operands)
		}
		translator.emitter.Instruction("jmp", rewriteLabel(operands[0]))
		return nil
	case "jr":
		if len(operands) != 1 {
			return translator.unsupported(mnemonic, operands)
		}
		reg, err := resolveRegister(operands[0])
		if err != nil {
			return err
		}
		translator.emitter.Instruction("jmp", reg.String())
		return nil
	case "ret":
		// Sugar for jumping through the return-address register.
		if len(operands) != 0 {
			return translator.unsupported(mnemonic, operands)
		}
		translator.emitter.Instruction("jmp", returnAddressRegister.String())
		return nil
	case "la", "lla":
		return translator.translateLoadAddress(mnemonic, operands)
	case "mv":
		if len(operands) != 2 {
			return translator.unsupported(mnemonic, operands)
		}
		dest, err := resolveRegister(operands[0])
		if err != nil {
			return err
		}
		src, err := resolveRegister(operands[1])
		if err != nil {
			return err
		}
		translator.emitter.Instruction("mov", dest.String(), src.String())
		return nil
	case "call":
		return translator.translateCall(mnemonic, operands)
	case "beq", "bne", "blt", "bge", "bgt", "ble":
		if len(operands) != 3 {
			return translator.unsupported(mnemonic, operands)
		}
		return translator.translateBranch(mnemonic[1:], operands[0], operands[1], operands[2])
	case "beqz", "bnez", "bltz", "bgez", "bgtz", "blez":
		// The zero forms reuse the branch table with the right hand
		// operand fixed to zero.
		if len(operands) != 2 {
			return translator.unsupported(mnemonic, operands)
		}
		return translator.translateBranch(mnemonic[1:len(mnemonic)-1], operands[0], "0", operands[1])
	case "li":
		if len(operands) != 2 {
			return translator.unsupported(mnemonic, operands)
		}
		dest, err := resolveRegister(operands[0])
		if err != nil {
			return err
		}
		translator.emitter.Instruction("mov", dest.String(), normalizeOperand(operands[1]))
		return nil
	case "lui":
		return translator.translateLoadUpperImmediate(mnemonic, operands)
	}
	return translator.unsupported(mnemonic, operands)
}

// translateArithmetic handles the three operand add/shift family. fox32
// binary operations mutate their first operand in place: add r1, r2 means
// r1 += r2. When the destination is also the first source the instruction
// maps one to one:
//	add r10, r11
// Otherwise the computation is staged through the scratch register, so the
// destination is not clobbered before the second source is consumed:
//	mov r2, r11
//	add r2, r12
//	mov r10, r2
func (translator *Translator) translateArithmetic(mnemonic string, operands []string) error {
	if len(operands) != 3 {
		return translator.unsupported(mnemonic, operands)
	}
	op := arithmeticOps[mnemonic]
	dest, err := resolveRegister(operands[0])
	if err != nil {
		return err
	}
	src, err := resolveRegister(operands[1])
	if err != nil {
		return err
	}
	value, err := resolveValue(operands[2])
	if err != nil {
		return err
	}
	if dest == src {
		translator.emitter.Instruction(op, dest.String(), value)
		return nil
	}
	translator.emitter.Instruction("mov", scratchRegister.String(), src.String())
	translator.emitter.Instruction(op, scratchRegister.String(), value)
	translator.emitter.Instruction("mov", dest.String(), scratchRegister.String())
	return nil
}

// effectiveAddress returns the register that a memory access goes through.
// A zero offset accesses straight through the base register and costs
// nothing. A nonzero offset first builds the effective address in the
// scratch register:
//	mov r2, rsp
//	add r2, 0x4
func (translator *Translator) effectiveAddress(token string, mnemonic string, operands []string) (string, error) {
	offsetText, baseText, ok := splitMemoryOperand(token)
	if !ok {
		return "", translator.unsupported(mnemonic, operands)
	}
	base, err := resolveRegister(baseText)
	if err != nil {
		return "", err
	}
	offset, ok := parseOffset(offsetText)
	if !ok {
		return "", translator.unsupported(mnemonic, operands)
	}
	if offset == 0 {
		return base.String(), nil
	}
	translator.emitter.Instruction("mov", scratchRegister.String(), base.String())
	translator.emitter.Instruction("add", scratchRegister.String(), fmt.Sprintf("0x%X", offset))
	return scratchRegister.String(), nil
}

// translateLoad handles "lw dest, offset(base)" and the narrower widths:
//	mov r10, [rsp]
func (translator *Translator) translateLoad(mnemonic string, operands []string) error {
	if len(operands) != 2 {
		return translator.unsupported(mnemonic, operands)
	}
	dest, err := resolveRegister(operands[0])
	if err != nil {
		return err
	}
	addr, err := translator.effectiveAddress(operands[1], mnemonic, operands)
	if err != nil {
		return err
	}
	translator.emitter.Instruction(loadOps[mnemonic], dest.String(), "["+addr+"]")
	return nil
}

// translateStore handles "sw value, offset(base)" and the narrower widths:
//	mov [rsp], r10
func (translator *Translator) translateStore(mnemonic string, operands []string) error {
	if len(operands) != 2 {
		return translator.unsupported(mnemonic, operands)
	}
	value, err := resolveRegister(operands[0])
	if err != nil {
		return err
	}
	addr, err := translator.effectiveAddress(operands[1], mnemonic, operands)
	if err != nil {
		return err
	}
	translator.emitter.Instruction(storeOps[mnemonic], "["+addr+"]", value.String())
	return nil
}

// translateLoadAddress handles la/lla. fox32's rta moves the absolute
// address of a label into a register:
//	rta r10, message
func (translator *Translator) translateLoadAddress(mnemonic string, operands []string) error {
	if len(operands) != 2 {
		return translator.unsupported(mnemonic, operands)
	}
	dest, err := resolveRegister(operands[0])
	if err != nil {
		return err
	}
	translator.emitter.Instruction("rta", dest.String(), rewriteLabel(operands[1]))
	return nil
}

// translateCall expands a subroutine call. fox32 has no address-of-next-
// instruction primitive here, so a synthetic label marks the resume point
// right after the jump and its address goes into the return-address
// register first:
//	rta r1, call_ret_0
//	jmp callee
//	call_ret_0:
// When the callee later returns through r1, control resumes exactly after
// the call site. The label counter only ever increases, so the labels are
// unique across the whole run.
func (translator *Translator) translateCall(mnemonic string, operands []string) error {
	if len(operands) != 1 {
		return translator.unsupported(mnemonic, operands)
	}
	label := fmt.Sprintf("call_ret_%d", translator.callLabelID)
	translator.callLabelID++
	translator.emitter.Instruction("rta", returnAddressRegister.String(), label)
	translator.emitter.Instruction("jmp", rewriteLabel(operands[0]))
	translator.emitter.Label(label)
	return nil
}

// translateBranch emits a compare followed by a conditional jump:
//	cmp r10, r11
//	ifz jmp done
// kind is the condition part of the mnemonic (the "lt" of blt and bltz).
// When the table says swap, the compare operands trade places and the
// opposite condition expresses the original meaning.
func (translator *Translator) translateBranch(kind string, left, right, target string) error {
	mapping := branchConditions[kind]
	leftValue, err := resolveValue(left)
	if err != nil {
		return err
	}
	rightValue, err := resolveValue(right)
	if err != nil {
		return err
	}
	if mapping.swap {
		leftValue, rightValue = rightValue, leftValue
	}
	translator.emitter.Instruction("cmp", leftValue, rightValue)
	translator.emitter.ConditionalJump(mapping.condition, rewriteLabel(target))
	return nil
}

// translateLoadUpperImmediate shifts the literal into the upper bits and
// fully overwrites the destination; nothing is accumulated.
func (translator *Translator) translateLoadUpperImmediate(mnemonic string, operands []string) error {
	if len(operands) != 2 {
		return translator.unsupported(mnemonic, operands)
	}
	dest, err := resolveRegister(operands[0])
	if err != nil {
		return err
	}
	value, ok := parseInteger(operands[1])
	if !ok {
		return translator.unsupported(mnemonic, operands)
	}
	translator.emitter.Instruction("mov", dest.String(), fmt.Sprintf("0x%X", value<<luiShift))
	return nil
}

func (translator *Translator) unsupported(mnemonic string, operands []string) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedInstruction, mnemonic)
	}
	return fmt.Errorf("%w: %s %s", ErrUnsupportedInstruction, mnemonic, strings.Join(operands, ", "))
}
