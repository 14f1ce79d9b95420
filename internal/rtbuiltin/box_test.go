package rtbuiltin

import (
	"testing"

	"github.com/niflheim-lang/niflheim/internal/rtpanic"
)

func TestBoxRoundTripAllKinds(t *testing.T) {
	ts, gc := newTestEnv()

	if b := BoxI64New(ts, gc, -9); BoxI64Get(b) != -9 {
		t.Fatalf("BoxI64 round trip = %d, want -9", BoxI64Get(b))
	}
	if b := BoxU64New(ts, gc, 9); BoxU64Get(b) != 9 {
		t.Fatalf("BoxU64 round trip = %d, want 9", BoxU64Get(b))
	}
	if b := BoxU8New(ts, gc, 200); BoxU8Get(b) != 200 {
		t.Fatalf("BoxU8 round trip = %d, want 200", BoxU8Get(b))
	}
	if b := BoxBoolNew(ts, gc, true); !BoxBoolGet(b) {
		t.Fatal("BoxBool round trip must preserve true")
	}
	if b := BoxDoubleNew(ts, gc, 2.5); BoxDoubleGet(b) != 2.5 {
		t.Fatalf("BoxDouble round trip = %v, want 2.5", BoxDoubleGet(b))
	}
}

func TestBoxGetWrongKindPanics(t *testing.T) {
	ts, gc := newTestEnv()
	b := BoxI64New(ts, gc, 1)

	defer func() {
		r := recover()
		p, ok := rtpanic.As(r)
		if !ok || p.Kind != rtpanic.KindTypeMismatch {
			t.Fatalf("expected KindTypeMismatch panic, got %v", r)
		}
	}()
	BoxU64Get(b)
}

func TestBoxHeaderRecordsExpectedType(t *testing.T) {
	ts, gc := newTestEnv()
	b := BoxI64New(ts, gc, 1)
	if b.Header().Type != TypeBoxI64 {
		t.Fatalf("BoxI64 header type = %v, want TypeBoxI64", b.Header().Type)
	}
	if !TypeBoxI64.IsLeaf() {
		t.Fatal("TypeBoxI64 must be a leaf type, it holds no outgoing references")
	}
}
