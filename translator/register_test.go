package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRegister_ABINames(t *testing.T) {
	testData := []struct {
		name   string
		target string
	}{
		{"zero", "r0"},
		{"ra", "r1"},
		{"sp", "rsp"},
		{"gp", "r3"},
		{"tp", "r4"},
		{"t0", "r5"},
		{"t1", "r6"},
		{"t2", "r7"},
		{"s0", "r8"},
		{"s1", "r9"},
		{"a0", "r10"},
		{"a7", "r17"},
	}
	for _, data := range testData {
		reg, err := resolveRegister(data.name)
		assert.Nil(t, err)
		assert.Equal(t, data.target, reg.String())
	}
}

func TestResolveRegister_NumberedNames(t *testing.T) {
	for i := 0; i < 32; i++ {
		reg, err := resolveRegister(fmt.Sprintf("x%d", i))
		assert.Nil(t, err)
		if i == 2 {
			assert.Equal(t, "rsp", reg.String())
		} else {
			assert.Equal(t, fmt.Sprintf("r%d", i), reg.String())
		}
	}
}

// Both naming schemes index the same register space: the ABI name at
// position i and xi must land on the same fox32 register, and no two
// positions may collide.
func TestResolveRegister_SchemesAgreeAndInjective(t *testing.T) {
	seen := map[Register]string{}
	for i, name := range abiRegisterNames {
		abi, err := resolveRegister(name)
		assert.Nil(t, err)
		numbered, err := resolveRegister(fmt.Sprintf("x%d", i))
		assert.Nil(t, err)
		assert.Equal(t, numbered, abi)
		previous, exist := seen[abi]
		assert.False(t, exist, "%s and %s resolve to the same register", previous, name)
		seen[abi] = name
	}
}

// No source name may reach the scratch register.
func TestResolveRegister_ScratchUnreachable(t *testing.T) {
	for name := range registerMap {
		reg, err := resolveRegister(name)
		assert.Nil(t, err)
		assert.NotEqual(t, scratchRegister, reg, "register name %s reaches the scratch register", name)
	}
}

func TestResolveRegister_Unknown(t *testing.T) {
	for _, name := range []string{"", "q7", "a8", "x32", "rsp", "r10"} {
		_, err := resolveRegister(name)
		assert.ErrorIs(t, err, ErrUnknownRegister)
	}
}

func TestResolveRegister_Deterministic(t *testing.T) {
	first, err := resolveRegister("a3")
	assert.Nil(t, err)
	for i := 0; i < 100; i++ {
		again, err := resolveRegister("a3")
		assert.Nil(t, err)
		assert.Equal(t, first, again)
	}
}
