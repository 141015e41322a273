package parsing

import "strconv"

// Represents an ordered input of elements of some kind (not necessarily just
// runes). Implementations are values: every method returns a new Stream and
// leaves the receiver untouched, so alternative branches can hold independent
// positions derived from a common ancestor.
type Stream[I any] interface {
	// The absolute offset of the cursor.
	Tell() int
	// Up to n upcoming elements, without advancing.
	Peek(n int) []I
	// Up to n upcoming elements, and the stream positioned after them.
	Read(n int) ([]I, Stream[I])
	// A stream positioned at an absolute offset.
	Seek(offset int) Stream[I]
	// A stream positioned relative to the current offset.
	Move(delta int) Stream[I]
	// Whether the cursor is outside the readable range.
	EOS() bool
}

// SliceStream is a Stream over an in-memory slice. It is cheap to copy; the
// backing slice is shared and never written.
type SliceStream[I any] struct {
	data   []I
	offset int
}

func NewSliceStream[I any](data []I) SliceStream[I] {
	return SliceStream[I]{data: data}
}

func (s SliceStream[I]) Tell() int {
	return s.offset
}

func (s SliceStream[I]) Len() int {
	return len(s.data)
}

func (s SliceStream[I]) window(n int) []I {
	if s.EOS() || n <= 0 {
		return nil
	}
	end := min(s.offset+n, s.Len())
	return s.data[s.offset:end:end]
}

func (s SliceStream[I]) Peek(n int) []I {
	return s.window(n)
}

func (s SliceStream[I]) Read(n int) ([]I, Stream[I]) {
	w := s.window(n)
	s.offset += len(w)
	return w, s
}

func (s SliceStream[I]) Seek(offset int) Stream[I] {
	s.offset = offset
	return s
}

func (s SliceStream[I]) Move(delta int) Stream[I] {
	s.offset += delta
	return s
}

func (s SliceStream[I]) EOS() bool {
	return s.offset < 0 || s.offset >= s.Len()
}

// Diagnostic position, folded over the elements a parser consumes.
type State[I any] interface {
	// Returns the state after consuming the given elements.
	Update(consumed []I) State[I]
	// Human readable position for error messages.
	Format() string
}

// IndexState tracks the element index. It suits token streams that carry no
// line structure of their own.
type IndexState[I any] int

func (st IndexState[I]) Update(consumed []I) State[I] {
	return st + IndexState[I](len(consumed))
}

func (st IndexState[I]) Format() string {
	return strconv.Itoa(int(st))
}
