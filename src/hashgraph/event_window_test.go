package hashgraph

import (
	"testing"
)

func TestAncientMode(t *testing.T) {
	x := NewEventDescriptor(Hash{}, 0, 10, 3, testEpoch)

	if GenerationThreshold.Indicator(x) != 10 {
		t.Fatalf("GenerationThreshold indicator should be the generation")
	}
	if BirthRoundThreshold.Indicator(x) != 3 {
		t.Fatalf("BirthRoundThreshold indicator should be the birth round")
	}

	for _, m := range []AncientMode{GenerationThreshold, BirthRoundThreshold} {
		parsed, err := ParseAncientMode(m.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != m {
			t.Fatalf("ParseAncientMode(%s) should be %d, not %d", m, m, parsed)
		}
	}

	if m, err := ParseAncientMode("BIRTH_ROUND"); err != nil || m != BirthRoundThreshold {
		t.Fatalf("ParseAncientMode should accept BIRTH_ROUND")
	}

	if _, err := ParseAncientMode("round"); err == nil {
		t.Fatalf("ParseAncientMode should reject unknown modes")
	}
}

func TestGenesisEventWindow(t *testing.T) {
	for _, m := range []AncientMode{GenerationThreshold, BirthRoundThreshold} {
		w := GenesisEventWindow(m)

		if !w.IsGenesis() {
			t.Fatalf("%s: genesis window should report IsGenesis", m)
		}

		first := NewEventDescriptor(Hash{}, 0, FirstGeneration, FirstRound, testEpoch)
		if w.IsAncient(first) {
			t.Fatalf("%s: nothing valid should be ancient in the genesis window", m)
		}

		zero := NewEventDescriptor(Hash{}, 0, 0, 0, testEpoch)
		if !w.IsAncient(zero) {
			t.Fatalf("%s: indicator 0 is below genesis and should be ancient", m)
		}
	}
}

func TestEventWindowIsAncient(t *testing.T) {
	window := NewEventWindow(5, 3, 1, GenerationThreshold)

	if window.IsGenesis() {
		t.Fatalf("Window with threshold 3 is not genesis")
	}

	for gen, ancient := range map[uint64]bool{1: true, 2: true, 3: true, 4: false, 10: false} {
		body := EventBody{Creator: 1, Generation: gen, BirthRound: 100, TimeCreated: testEpoch}
		event, err := NewPlatformEvent(body)
		if err != nil {
			t.Fatal(err)
		}
		linked := NewLinkedEvent(event, nil, nil)

		// all three representations agree
		if window.IsAncient(event) != ancient {
			t.Fatalf("PlatformEvent gen %d: IsAncient should be %v", gen, ancient)
		}
		if window.IsAncient(event.Descriptor()) != ancient {
			t.Fatalf("EventDescriptor gen %d: IsAncient should be %v", gen, ancient)
		}
		if window.IsAncient(linked) != ancient {
			t.Fatalf("LinkedEvent gen %d: IsAncient should be %v", gen, ancient)
		}
	}

	roundWindow := NewEventWindow(5, 3, 1, BirthRoundThreshold)
	d := NewEventDescriptor(Hash{}, 0, 1, 4, testEpoch)
	if roundWindow.IsAncient(d) {
		t.Fatalf("Birth round 4 should not be ancient at threshold 3")
	}
}

func TestEventWindowExpiredClamp(t *testing.T) {
	w := NewEventWindow(1, 3, 7, GenerationThreshold)
	if w.ExpiredThreshold() != 3 {
		t.Fatalf("Expired threshold should be clamped to 3, not %d", w.ExpiredThreshold())
	}
	if w.LatestConsensusRound() != 1 || w.AncientMode() != GenerationThreshold {
		t.Fatalf("Window accessors do not match constructor arguments")
	}
}
