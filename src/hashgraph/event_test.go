package hashgraph

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func createDummyEventBody() EventBody {
	parent := NewEventDescriptor(SHA256Hash([]byte("self")), 1, 3, 2, testEpoch)
	other := NewEventDescriptor(SHA256Hash([]byte("other")), 2, 4, 2, testEpoch.Add(time.Second))
	return EventBody{
		Creator:      1,
		Generation:   5,
		BirthRound:   2,
		TimeCreated:  testEpoch.Add(2 * time.Second),
		SelfParent:   &parent,
		OtherParents: []EventDescriptor{other},
		Transactions: [][]byte{[]byte("abc"), []byte("def")},
	}
}

func TestEventBodyHash(t *testing.T) {
	body := createDummyEventBody()

	h1, err := body.Hash()
	if err != nil {
		t.Fatalf("Error hashing EventBody: %s", err)
	}

	body2 := createDummyEventBody()
	h2, err := body2.Hash()
	if err != nil {
		t.Fatalf("Error hashing EventBody: %s", err)
	}

	if h1 != h2 {
		t.Fatalf("Identical bodies should have identical hashes")
	}

	if h1.IsZero() {
		t.Fatalf("Hash should not be zero")
	}

	modified := createDummyEventBody()
	modified.TimeCreated = modified.TimeCreated.Add(time.Nanosecond)
	h3, _ := modified.Hash()
	if h3 == h1 {
		t.Fatalf("Changing the creation time should change the hash")
	}

	forged := createDummyEventBody()
	sp := NewEventDescriptor(forged.SelfParent.Hash(), 1, 4, 2, testEpoch)
	forged.SelfParent = &sp
	h4, _ := forged.Hash()
	if h4 == h1 {
		t.Fatalf("Changing a parent descriptor should change the hash")
	}
}

func TestPlatformEvent(t *testing.T) {
	body := createDummyEventBody()

	event, err := NewPlatformEvent(body)
	if err != nil {
		t.Fatal(err)
	}

	expectedHash, _ := body.Hash()
	if event.Hash() != expectedHash {
		t.Fatalf("Event hash should be the body hash")
	}

	d := event.Descriptor()
	if d.Hash() != event.Hash() ||
		d.Creator() != 1 ||
		d.Generation() != 5 ||
		d.BirthRound() != 2 ||
		!d.TimeCreated().Equal(body.TimeCreated) {
		t.Fatalf("Descriptor %v does not describe event %v", d, event)
	}

	if event.SelfParent().Hash() != body.SelfParent.Hash() {
		t.Fatalf("SelfParent should return the body's self-parent")
	}

	if event.OtherParent().Hash() != body.OtherParents[0].Hash() {
		t.Fatalf("OtherParent should return the first other-parent")
	}

	if len(event.Transactions()) != 2 {
		t.Fatalf("Transactions should contain 2 items, not %d", len(event.Transactions()))
	}
}

func TestPlatformEventWithoutParents(t *testing.T) {
	event, err := NewPlatformEvent(EventBody{
		Creator:     7,
		Generation:  FirstGeneration,
		BirthRound:  FirstRound,
		TimeCreated: testEpoch,
	})
	if err != nil {
		t.Fatal(err)
	}

	if event.SelfParent() != nil {
		t.Fatalf("SelfParent should be nil")
	}
	if event.OtherParent() != nil {
		t.Fatalf("OtherParent should be nil")
	}
}

func TestHashFromBytes(t *testing.T) {
	h := SHA256Hash([]byte("x"))

	h2, err := HashFromBytes(h[:])
	if err != nil {
		t.Fatal(err)
	}
	if h2 != h {
		t.Fatalf("HashFromBytes should copy the bytes")
	}

	if _, err := HashFromBytes([]byte{1, 2}); err == nil {
		t.Fatalf("HashFromBytes should reject short slices")
	}

	if len(h.Hex()) != 2+2*HashLength {
		t.Fatalf("Hex should be 0X followed by %d characters: %s", 2*HashLength, h.Hex())
	}
}
