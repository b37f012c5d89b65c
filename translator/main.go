package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// A simple program to translate a RISC-V assembly subset into fox32
// assembly, instruction by instruction.

type includeList []string

func (list *includeList) String() string {
	return strings.Join(*list, ",")
}

func (list *includeList) Set(value string) error {
	*list = append(*list, value)
	return nil
}

var (
	output     = flag.String("o", "out.asm", "the output fox32 assembly file path")
	outputLong = flag.String("output", "", "same as -o")
	debug      = flag.Bool("debug", false, "echo each source line as a comment before its translation")
	includes   includeList
)

func main() {
	flag.Var(&includes, "include", "additional file to #include after start.asm, repeatable")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: riscv2fox32 [flags] input.s")
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := flag.Arg(0)
	outputPath := *output
	if *outputLong != "" {
		outputPath = *outputLong
	}
	f, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[riscv2fox32]: failed to open file: %s, err: %v\n", input, err)
		os.Exit(1)
	}
	translator := NewTranslator(*debug)
	translator.WriteHeader(includes)
	err = translator.Parse(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[riscv2fox32]: failed to translate: %s, err: %v\n", input, err)
		os.Exit(1)
	}
	if err := translator.SaveTo(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "[riscv2fox32]: failed to save to path: %s, err: %v\n", outputPath, err)
		os.Exit(1)
	}
}
