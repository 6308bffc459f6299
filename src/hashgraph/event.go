package hashgraph

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ugorji/go/codec"
)

/*******************************************************************************
EventDescriptor
*******************************************************************************/

// EventDescriptor identifies an event as claimed by a reference to it. It does
// not own or point to the referenced event; the linker resolves it by hash and
// then checks the claimed fields against the event it finds.
type EventDescriptor struct {
	hash        Hash
	creator     uint32
	generation  uint64
	birthRound  uint64
	timeCreated time.Time
}

// NewEventDescriptor creates an EventDescriptor.
func NewEventDescriptor(hash Hash, creator uint32, generation, birthRound uint64, timeCreated time.Time) EventDescriptor {
	return EventDescriptor{
		hash:        hash,
		creator:     creator,
		generation:  generation,
		birthRound:  birthRound,
		timeCreated: timeCreated,
	}
}

// Hash returns the hash of the referenced event.
func (d EventDescriptor) Hash() Hash { return d.hash }

// Creator returns the claimed creator id.
func (d EventDescriptor) Creator() uint32 { return d.creator }

// Generation returns the claimed generation.
func (d EventDescriptor) Generation() uint64 { return d.generation }

// BirthRound returns the claimed birth round.
func (d EventDescriptor) BirthRound() uint64 { return d.birthRound }

// TimeCreated returns the claimed creation time.
func (d EventDescriptor) TimeCreated() time.Time { return d.timeCreated }

// String implements fmt.Stringer.
func (d EventDescriptor) String() string {
	return fmt.Sprintf("(%d, %s, g%d, r%d)", d.creator, d.hash.Short(), d.generation, d.birthRound)
}

type descriptorWrapper struct {
	Hash        []byte
	Creator     uint32
	Generation  uint64
	BirthRound  uint64
	TimeCreated int64
}

func (d EventDescriptor) wrap() descriptorWrapper {
	return descriptorWrapper{
		Hash:        d.hash[:],
		Creator:     d.creator,
		Generation:  d.generation,
		BirthRound:  d.birthRound,
		TimeCreated: d.timeCreated.UnixNano(),
	}
}

/*******************************************************************************
EventBody
*******************************************************************************/

// EventBody contains the fields of an event as created by its creator.
type EventBody struct {
	Creator      uint32            //creator id
	Generation   uint64            //1 + max generation of the parents
	BirthRound   uint64            //consensus round in effect at creation
	TimeCreated  time.Time         //strictly increasing per creator
	SelfParent   *EventDescriptor  //creator's previous event, nil for the first one
	OtherParents []EventDescriptor //only the first one is linked
	Transactions [][]byte          //the payload, opaque here
}

type bodyWrapper struct {
	Creator      uint32
	Generation   uint64
	BirthRound   uint64
	TimeCreated  int64
	SelfParent   *descriptorWrapper
	OtherParents []descriptorWrapper
	Transactions [][]byte
}

// Marshal returns the canonical JSON encoding of the body. Descriptors are
// encoded field by field and times as Unix nanoseconds so that the encoding,
// and therefore the hash, is stable.
func (b *EventBody) Marshal() ([]byte, error) {
	wrapper := bodyWrapper{
		Creator:      b.Creator,
		Generation:   b.Generation,
		BirthRound:   b.BirthRound,
		TimeCreated:  b.TimeCreated.UnixNano(),
		OtherParents: make([]descriptorWrapper, len(b.OtherParents)),
		Transactions: b.Transactions,
	}
	if b.SelfParent != nil {
		sp := b.SelfParent.wrap()
		wrapper.SelfParent = &sp
	}
	for i, op := range b.OtherParents {
		wrapper.OtherParents[i] = op.wrap()
	}

	buf := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(buf, jh)

	if err := enc.Encode(wrapper); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Hash returns the SHA256 hash of the canonical encoding of the body.
func (b *EventBody) Hash() (Hash, error) {
	raw, err := b.Marshal()
	if err != nil {
		return Hash{}, err
	}
	return SHA256Hash(raw), nil
}

/*******************************************************************************
PlatformEvent
*******************************************************************************/

// PlatformEvent is an event as delivered by the intake layer: deduplicated,
// with its signature and hash already verified. It is never mutated.
type PlatformEvent struct {
	body       EventBody
	hash       Hash
	descriptor EventDescriptor
}

// NewPlatformEvent hashes body and wraps it in a PlatformEvent. The caller
// must not modify body's slices afterwards.
func NewPlatformEvent(body EventBody) (*PlatformEvent, error) {
	hash, err := body.Hash()
	if err != nil {
		return nil, fmt.Errorf("hashing event body: %w", err)
	}
	return NewPlatformEventWithHash(body, hash), nil
}

// NewPlatformEventWithHash wraps body with a hash computed upstream.
func NewPlatformEventWithHash(body EventBody, hash Hash) *PlatformEvent {
	return &PlatformEvent{
		body: body,
		hash: hash,
		descriptor: NewEventDescriptor(hash,
			body.Creator,
			body.Generation,
			body.BirthRound,
			body.TimeCreated),
	}
}

// Hash returns the event's hash.
func (e *PlatformEvent) Hash() Hash { return e.hash }

// Creator returns the creator id.
func (e *PlatformEvent) Creator() uint32 { return e.body.Creator }

// Generation returns the event's generation.
func (e *PlatformEvent) Generation() uint64 { return e.body.Generation }

// BirthRound returns the event's birth round.
func (e *PlatformEvent) BirthRound() uint64 { return e.body.BirthRound }

// TimeCreated returns the creator's timestamp.
func (e *PlatformEvent) TimeCreated() time.Time { return e.body.TimeCreated }

// SelfParent returns the self-parent descriptor, or nil.
func (e *PlatformEvent) SelfParent() *EventDescriptor {
	if e.body.SelfParent == nil {
		return nil
	}
	sp := *e.body.SelfParent
	return &sp
}

// OtherParents returns all the other-parent descriptors.
func (e *PlatformEvent) OtherParents() []EventDescriptor { return e.body.OtherParents }

// OtherParent returns the first other-parent descriptor, or nil.
func (e *PlatformEvent) OtherParent() *EventDescriptor {
	if len(e.body.OtherParents) == 0 {
		return nil
	}
	op := e.body.OtherParents[0]
	return &op
}

// Transactions returns the opaque payload.
func (e *PlatformEvent) Transactions() [][]byte { return e.body.Transactions }

// Body returns a copy of the body.
func (e *PlatformEvent) Body() EventBody { return e.body }

// Descriptor returns the descriptor other events use to reference this one.
func (e *PlatformEvent) Descriptor() EventDescriptor { return e.descriptor }

// String implements fmt.Stringer.
func (e *PlatformEvent) String() string {
	return e.descriptor.String()
}
