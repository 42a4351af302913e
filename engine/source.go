package engine

import (
	"math/rand/v2"
	"slices"
)

// PreviewSize is the number of upcoming shapes a Bag keeps queued.
const PreviewSize = 5

// PieceSource produces the endless sequence of shapes a game spawns.
// Implementations own their randomness so that a Clone diverges from its
// parent only through its own draws.
type PieceSource interface {
	// Next consumes and returns the next shape.
	Next() Shape
	// Peek returns up to n upcoming shapes without consuming them.
	Peek(n int) []Shape
	// Clone returns an independent copy, including generator state.
	Clone() PieceSource
}

// SourceFactory builds a fresh PieceSource from a seed. Games call it on
// construction and on every Reset.
type SourceFactory func(seed uint64) PieceSource

// Bag is the 7-bag randomizer: every seven draws from the pool hold each
// shape exactly once.
type Bag struct {
	rng   *rand.PCG
	pool  []Shape
	queue []Shape
}

var _ PieceSource = (*Bag)(nil)

// NewBag returns a bag seeded with seed and a full preview queue.
func NewBag(seed uint64) *Bag {
	b := &Bag{
		rng:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
		pool:  make([]Shape, 0, numShapes),
		queue: make([]Shape, 0, PreviewSize+1),
	}
	for range PreviewSize {
		b.queue = append(b.queue, b.draw())
	}
	return b
}

// NewBagSource adapts NewBag to a SourceFactory.
func NewBagSource(seed uint64) PieceSource {
	return NewBag(seed)
}

func (b *Bag) refill() {
	b.pool = append(b.pool[:0], Shapes[:]...)
	rand.New(b.rng).Shuffle(len(b.pool), func(i, j int) {
		b.pool[i], b.pool[j] = b.pool[j], b.pool[i]
	})
}

func (b *Bag) draw() Shape {
	if len(b.pool) == 0 {
		b.refill()
	}
	last := len(b.pool) - 1
	s := b.pool[last]
	b.pool = b.pool[:last]
	return s
}

// Next pops the front of the preview queue and draws a replacement.
func (b *Bag) Next() Shape {
	s := b.queue[0]
	b.queue = append(b.queue[:0], b.queue[1:]...)
	b.queue = append(b.queue, b.draw())
	return s
}

// Peek returns a copy of the first n queued shapes.
func (b *Bag) Peek(n int) []Shape {
	n = max(0, min(n, len(b.queue)))
	return slices.Clone(b.queue[:n])
}

// Clone copies the queue, the pool and the generator state.
func (b *Bag) Clone() PieceSource {
	rng := *b.rng
	return &Bag{
		rng:   &rng,
		pool:  slices.Clone(b.pool),
		queue: slices.Clone(b.queue),
	}
}

// Sequence cycles through a fixed list of shapes. It is deterministic and
// useful for replays and scripted scenarios.
type Sequence struct {
	shapes []Shape
	pos    int
}

var _ PieceSource = (*Sequence)(nil)

// NewSequence returns a source that yields shapes in order, forever. It
// panics when shapes is empty.
func NewSequence(shapes ...Shape) *Sequence {
	if len(shapes) == 0 {
		panic("engine: NewSequence requires at least one shape")
	}
	return &Sequence{shapes: slices.Clone(shapes)}
}

// SequenceFactory returns a SourceFactory that ignores the seed and always
// starts shapes from the beginning.
func SequenceFactory(shapes ...Shape) SourceFactory {
	return func(uint64) PieceSource {
		return NewSequence(shapes...)
	}
}

// Next returns the current shape and advances, wrapping at the end.
func (s *Sequence) Next() Shape {
	shape := s.shapes[s.pos]
	s.pos = (s.pos + 1) % len(s.shapes)
	return shape
}

// Peek returns up to n upcoming shapes, at most PreviewSize.
func (s *Sequence) Peek(n int) []Shape {
	n = max(0, min(n, PreviewSize))
	out := make([]Shape, n)
	for i := range n {
		out[i] = s.shapes[(s.pos+i)%len(s.shapes)]
	}
	return out
}

// Clone returns a Sequence at the same position.
func (s *Sequence) Clone() PieceSource {
	return &Sequence{shapes: s.shapes, pos: s.pos}
}
