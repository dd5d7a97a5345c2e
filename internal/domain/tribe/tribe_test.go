package tribe

import "testing"

func TestParse(t *testing.T) {
	for _, tb := range All() {
		got, ok := Parse(string(tb))
		if !ok || got != tb {
			t.Fatalf("expected %s to parse", tb)
		}
	}
	if got, ok := Parse("cringe"); !ok || got != DEGEN {
		t.Fatalf("expected CRINGE alias to map to DEGEN, got %s ok=%v", got, ok)
	}
	if got, ok := Parse("  chad  "); !ok || got != CHAD {
		t.Fatalf("expected trimmed lowercase to parse, got %s ok=%v", got, ok)
	}
	if _, ok := Parse("WAGMI"); ok {
		t.Fatalf("expected unknown tribe to fail")
	}
}

func TestMultiplierBps(t *testing.T) {
	want := map[Tribe]int64{FOFO: 10000, CAOS: 10500, CHAD: 11000, DEGEN: 12000}
	for tb, bps := range want {
		if got := tb.MultiplierBps(); got != bps {
			t.Fatalf("expected %s multiplier %d, got %d", tb, bps, got)
		}
	}
}
