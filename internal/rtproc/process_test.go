package rtproc

import (
	"bytes"
	"testing"

	"github.com/niflheim-lang/niflheim/internal/rtbuiltin"
	"github.com/niflheim-lang/niflheim/internal/rtpanic"
)

func TestInitBuildsAnIsolatedProcess(t *testing.T) {
	p1 := Init()
	p2 := Init()
	if p1.GC == p2.GC || p1.Thread == p2.Thread || p1.Globals == p2.Globals {
		t.Fatal("each Init() must build a fresh, independent set of runtime components")
	}
}

func TestRunReturnsZeroOnNormalCompletion(t *testing.T) {
	p := Init()
	var out, errOut bytes.Buffer
	p.Stdout, p.Stderr = &out, &errOut

	code := p.Run(func() { p.PrintlnI64(42) })
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if out.String() != "42\n" {
		t.Fatalf("stdout = %q, want %q", out.String(), "42\n")
	}
}

func TestRunReturnsOneOnExplicitPanic(t *testing.T) {
	p := Init()
	var out, errOut bytes.Buffer
	p.Stdout, p.Stderr = &out, &errOut

	code := p.Run(func() { rtpanic.Fail("user-triggered failure") })
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunReturnsTwoOnRuntimeFault(t *testing.T) {
	p := Init()
	var out, errOut bytes.Buffer
	p.Stdout, p.Stderr = &out, &errOut

	code := p.Run(func() { rtpanic.NullDeref("rt_field_load") })
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestPrintlnFamily(t *testing.T) {
	p := Init()
	var out bytes.Buffer
	p.Stdout = &out

	p.PrintlnI64(-7)
	p.PrintlnU64(9)
	p.PrintlnU8(255)
	p.PrintlnBool(true)
	p.PrintlnDouble(3.5)

	str := rtbuiltin.StrFromBytes(p.Thread, p.GC, []byte("hi"))
	p.PrintlnStr(str)

	want := "-7\n9\n255\ntrue\n3.5\nhi\n"
	if out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.String(), want)
	}
}

func TestShutdownResetsCollector(t *testing.T) {
	p := Init()
	rtbuiltin.StrFromBytes(p.Thread, p.GC, []byte("x"))
	if p.GC.Stats().TrackedObjectCount == 0 {
		t.Fatal("expected at least one tracked object before shutdown")
	}
	p.Shutdown()
	if p.GC.Stats().TrackedObjectCount != 0 {
		t.Fatal("Shutdown must reset the collector's tracked set")
	}
}
