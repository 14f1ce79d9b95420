// Package codegen lowers mem2reg'd SSA into GAS Intel-syntax x86-64
// assembly text targeting the SysV AMD64 calling convention, emitting the
// shadow-stack prologue/epilogue every activation needs around its runtime
// calls. The emitter/lowering-switch shape follows an LLVM-IR emitter
// targeting arm64; the output dialect and the calling convention here are
// replaced entirely.
package codegen

import (
	"io"

	"github.com/niflheim-lang/niflheim/internal/rtabi"
	"github.com/niflheim-lang/niflheim/internal/ssa"
	"github.com/niflheim-lang/niflheim/internal/types"
)

// Config carries the GC diagnostic options cmd/niflc exposes as compiler
// flags. Generate accepts these fields but emits no code for them: the
// emitted program is the same whichever of them are set.
type Config struct {
	GCStats   bool // -gc-stats
	GCVerbose bool // -gc-verbose
	GCStress  bool // -gc-stress
}

// Generate emits a complete assembly file for funcs to w.
func Generate(w io.Writer, funcs []*ssa.Func, sizes *types.Sizes, cfg Config) error {
	e := &emitter{w: w}

	e.emit(rtabi.IntelDirective)
	e.emitLine()
	e.emit(".text")
	for _, fn := range funcs {
		e.emit(".globl %s", funcLabel(fn))
	}
	e.emitLine()

	for i, fn := range funcs {
		if i > 0 {
			e.emitLine()
		}
		g := &funcGen{e: e, fn: fn, fr: buildFrame(fn), sizes: sizes, cfg: cfg}
		g.lowerFunc()
	}

	return e.err
}
