package main

import "fmt"

// Source registers are accepted under two naming schemes which share one
// index space:
// * The ABI names zero, ra, sp, gp, tp, t0-t2, s0-s1, a0-a7. The position
//   in the list defines the register index.
// * The numbered names x0-x31.
// Index i becomes the fox32 register ri, except index 2: the RISC-V stack
// pointer lives in fox32's dedicated stack register rsp. That diversion
// leaves r2 with no source name pointing at it, which is why r2 is free to
// serve as the scratch register.

type Register int

// stackRegister sits outside the r0-r31 range so that no numbered index
// can collide with it.
const stackRegister Register = 32

const stackRegisterIndex = 2

// scratchRegister is only ever written and read inside a single
// instruction's expansion. Its value must never be relied on across
// instruction boundaries.
const scratchRegister Register = stackRegisterIndex

// returnAddressRegister is where RISC-V ra (x1) lands on fox32. Call
// expansions store the resume address here and ret jumps through it.
const returnAddressRegister Register = 1

func (reg Register) String() string {
	if reg == stackRegister {
		return "rsp"
	}
	return fmt.Sprintf("r%d", int(reg))
}

var abiRegisterNames = []string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
}

var registerMap = buildRegisterMap()

func buildRegisterMap() map[string]Register {
	m := make(map[string]Register, 64)
	for i, name := range abiRegisterNames {
		m[name] = Register(i)
	}
	for i := 0; i < 32; i++ {
		m[fmt.Sprintf("x%d", i)] = Register(i)
	}
	m["sp"] = stackRegister
	m["x2"] = stackRegister
	return m
}

// resolveRegister maps a source register name to its fox32 register.
// Unknown names are a hard error, never a silent default.
func resolveRegister(name string) (Register, error) {
	reg, exist := registerMap[name]
	if !exist {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRegister, name)
	}
	return reg, nil
}
