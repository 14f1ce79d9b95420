// Package disasm decodes assembled x86-64 machine code back into a
// mnemonic listing, as a round-trip sanity check on codegen's emitted
// Intel-syntax text: assemble it with the host assembler, then decode the
// resulting object code and print what the CPU will actually execute next
// to what was emitted. Grounded on
// _examples/CongLeSolutionX-go_community/src/cmd/internal/objfile/disasm.go,
// the one real third-party domain dependency anywhere in the retrieval
// pack (golang.org/x/arch/x86/x86asm), wired in here rather than invented.
package disasm

import (
	"fmt"
	"io"

	"golang.org/x/arch/x86/x86asm"
)

// Listing is one decoded instruction, ready for side-by-side comparison
// against the text codegen emitted.
type Listing struct {
	Offset int
	Length int
	Text   string
}

// Decode walks code, decoding one x86-64 instruction at a time in 64-bit
// mode, and returns the resulting listing. It stops at the first byte it
// cannot decode rather than failing outright, since trailing padding or
// data bytes after the last real instruction are expected input, not an
// error - mirroring objfile/disasm.go's tolerant walk over a whole .text
// section.
func Decode(code []byte) ([]Listing, error) {
	var out []Listing
	offset := 0
	for offset < len(code) {
		inst, err := x86asm.Decode(code[offset:], 64)
		if err != nil {
			if offset == 0 {
				return nil, fmt.Errorf("disasm: decode at offset 0: %w", err)
			}
			break
		}
		out = append(out, Listing{
			Offset: offset,
			Length: inst.Len,
			Text:   x86asm.IntelSyntax(inst, uint64(offset), nil),
		})
		offset += inst.Len
	}
	return out, nil
}

// Print writes listing to w, one instruction per line, prefixed with its
// byte offset - the format cmd/niflc's -disasm flag prints next to the
// emitted assembly text.
func Print(w io.Writer, listing []Listing) error {
	for _, l := range listing {
		if _, err := fmt.Fprintf(w, "%6d: %s\n", l.Offset, l.Text); err != nil {
			return err
		}
	}
	return nil
}
