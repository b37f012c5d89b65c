package main

import (
	"fmt"
	"strconv"
	"strings"

	"riscv2fox32/util"
)

// Operand normalization. Integer literals of any sign and base are wrapped
// to the fox32 word width and re-emitted as hexadecimal; everything else
// passes through untouched and either resolves as a register later or
// surfaces as a translation failure.

// isIntegerLiteral reports whether token is an optional sign, an optional
// 0x prefix and hexadecimal or decimal digits.
func isIntegerLiteral(token string) bool {
	if len(token) > 0 && (token[0] == '+' || token[0] == '-') {
		token = token[1:]
	}
	if len(token) > 2 && (token[:2] == "0x" || token[:2] == "0X") {
		for i := 2; i < len(token); i++ {
			if !util.IsHexDigit(token[i]) {
				return false
			}
		}
		return true
	}
	if len(token) == 0 {
		return false
	}
	for i := 0; i < len(token); i++ {
		if !util.IsNumber(token[i]) {
			return false
		}
	}
	return true
}

// parseInteger parses a literal per its apparent base and wraps the value
// to an unsigned 32 bit word. Negative and oversized literals canonicalize
// to their two's complement bit pattern: -4 becomes 0xFFFFFFFC.
func parseInteger(token string) (uint32, bool) {
	negative := false
	if len(token) > 0 && (token[0] == '+' || token[0] == '-') {
		negative = token[0] == '-'
		token = token[1:]
	}
	base := 10
	if len(token) > 2 && (token[:2] == "0x" || token[:2] == "0X") {
		base = 16
		token = token[2:]
	}
	value, err := strconv.ParseUint(token, base, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		value = -value
	}
	return uint32(value), true
}

// normalizeOperand rewrites an integer literal into the fixed 0x form the
// emitter uses everywhere. Normalizing an already normalized literal yields
// the same text again.
func normalizeOperand(token string) string {
	if !isIntegerLiteral(token) {
		return token
	}
	value, ok := parseInteger(token)
	if !ok {
		return token
	}
	return fmt.Sprintf("0x%X", value)
}

// resolveValue resolves an operand that may be either a register or an
// integer literal, as in the second source of an arithmetic instruction or
// the operands of a compare.
func resolveValue(token string) (string, error) {
	if reg, err := resolveRegister(token); err == nil {
		return reg.String(), nil
	}
	if isIntegerLiteral(token) {
		return normalizeOperand(token), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRegister, token)
}

// rewriteLabel makes a source label valid for fox32: every dot becomes an
// underscore, and a leading underscore gets an L prepended. The rewrite is
// applied identically at every definition and every reference, so label
// identity is preserved. It is idempotent.
func rewriteLabel(name string) string {
	rewritten := strings.ReplaceAll(name, ".", "_")
	if strings.HasPrefix(rewritten, "_") {
		rewritten = "L" + rewritten
	}
	return rewritten
}

// splitMemoryOperand splits the "offset(base)" form of a memory operand.
func splitMemoryOperand(token string) (offset string, base string, ok bool) {
	open := strings.IndexByte(token, '(')
	if open == -1 || !strings.HasSuffix(token, ")") {
		return "", "", false
	}
	offset = strings.TrimSpace(token[:open])
	base = strings.TrimSpace(token[open+1 : len(token)-1])
	return offset, base, true
}

// parseOffset parses the offset part of a memory operand. An empty offset,
// as in "(sp)", means zero.
func parseOffset(token string) (uint32, bool) {
	if len(token) == 0 {
		return 0, true
	}
	if !isIntegerLiteral(token) {
		return 0, false
	}
	return parseInteger(token)
}
