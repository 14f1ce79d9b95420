// Package rtproc wires the runtime components (rtroot, rtgc, rtalloc,
// rtbuiltin, rtpanic) into the single process-wide instance a compiled
// program actually runs against, and implements the println family and the
// rt_init/rt_shutdown lifecycle. It is the Go analogue of
// the handful of process-global statics declared at the top of
// original_source/runtime/src/runtime.c.
package rtproc

import (
	"fmt"
	"io"
	"os"

	"github.com/niflheim-lang/niflheim/internal/rtbuiltin"
	"github.com/niflheim-lang/niflheim/internal/rtdesc"
	"github.com/niflheim-lang/niflheim/internal/rtgc"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
	"github.com/niflheim-lang/niflheim/internal/rtroot"
)

// Process bundles the single mutator thread's state, the global-root
// registry, and the collector - everything a running program needs, and
// everything a test needs to construct in isolation to exercise a
// scenario without process-global state leaking between tests.
type Process struct {
	Globals *rtroot.GlobalRoots
	GC      *rtgc.Collector
	Thread  *rtroot.ThreadState
	Stdout  io.Writer
	Stderr  io.Writer
}

// Init constructs a fresh Process: empty global-root registry, empty
// tracked set, a new thread state, with Stdout/Stderr defaulted to the
// process's real streams. Mirrors rt_init.
func Init() *Process {
	globals := rtroot.NewGlobalRoots()
	return &Process{
		Globals: globals,
		GC:      rtgc.New(globals),
		Thread:  rtroot.NewThreadState(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Shutdown mirrors rt_shutdown by resetting p's collector to its post-New
// state. Nothing else is released explicitly: the shadow stack and the
// objects themselves are ordinary Go memory the host GC reclaims once p is
// unreachable.
func (p *Process) Shutdown() {
	p.GC.Reset()
}

// Run executes fn under p, recovering any *rtpanic.Panic it raises,
// reporting it to p.Stderr, and returning the process exit code this runtime
// assigns.
func (p *Process) Run(fn func()) int {
	return rtpanic.Guard(p.Stderr, p.Thread.TraceTop, fn)
}

// Println* implement the rt_println_* family: deterministic, newline-
// terminated output to p.Stdout.

func (p *Process) PrintlnI64(v int64)     { fmt.Fprintln(p.Stdout, v) }
func (p *Process) PrintlnU64(v uint64)    { fmt.Fprintln(p.Stdout, v) }
func (p *Process) PrintlnU8(v uint8)      { fmt.Fprintln(p.Stdout, v) }
func (p *Process) PrintlnBool(v bool)     { fmt.Fprintln(p.Stdout, v) }
func (p *Process) PrintlnDouble(v float64) { fmt.Fprintln(p.Stdout, v) }

func (p *Process) PrintlnStr(obj rtdesc.Obj) {
	fmt.Fprintln(p.Stdout, string(rtbuiltin.StrBytes(obj)))
}
