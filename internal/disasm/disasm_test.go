package disasm

import (
	"bytes"
	"strings"
	"testing"
)

// 0x55 = push rbp, 0xc3 = ret. Hand-encoded rather than produced by the host
// assembler, so this test runs with no dependency on the `as` toolchain.
var pushRbpThenRet = []byte{0x55, 0xc3}

func TestDecodeProducesOneListingPerInstruction(t *testing.T) {
	listing, err := Decode(pushRbpThenRet)
	if err != nil {
		t.Fatalf("Decode returned an error: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("len(listing) = %d, want 2", len(listing))
	}
	if listing[0].Offset != 0 || listing[1].Offset != 1 {
		t.Fatalf("unexpected offsets: %+v", listing)
	}
	if !strings.Contains(strings.ToUpper(listing[0].Text), "PUSH") {
		t.Fatalf("first instruction text = %q, want it to mention PUSH", listing[0].Text)
	}
	if !strings.Contains(strings.ToUpper(listing[1].Text), "RET") {
		t.Fatalf("second instruction text = %q, want it to mention RET", listing[1].Text)
	}
}

func TestDecodeStopsAtUndecodableTrailingBytes(t *testing.T) {
	code := append(append([]byte{}, pushRbpThenRet...), 0x0f, 0xff) // 0x0f 0xff is not a valid opcode
	listing, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode must tolerate trailing undecodable bytes, got error: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("len(listing) = %d, want 2 (trailing garbage must be silently dropped)", len(listing))
	}
}

func TestDecodeFailsOnUndecodableFirstByte(t *testing.T) {
	_, err := Decode([]byte{0x0f, 0xff})
	if err == nil {
		t.Fatal("Decode must return an error when even the first instruction cannot be decoded")
	}
}

func TestDecodeEmptyInputYieldsEmptyListing(t *testing.T) {
	listing, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) returned an error: %v", err)
	}
	if len(listing) != 0 {
		t.Fatalf("Decode(nil) listing length = %d, want 0", len(listing))
	}
}

func TestPrintFormatsOffsetAndText(t *testing.T) {
	listing, err := Decode(pushRbpThenRet)
	if err != nil {
		t.Fatalf("Decode returned an error: %v", err)
	}
	var buf bytes.Buffer
	if err := Print(&buf, listing); err != nil {
		t.Fatalf("Print returned an error: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected one line per instruction, got: %q", out)
	}
	if !strings.Contains(out, "0: ") {
		t.Fatalf("expected the first line to be prefixed with offset 0, got: %q", out)
	}
}
