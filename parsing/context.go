package parsing

// Context pairs a stream position with the diagnostic state that describes
// it. It is the unit threaded through a parse and is never mutated; every
// step returns a new Context.
type Context[I any] struct {
	s  Stream[I]
	st State[I]
}

func NewContext[I any](s Stream[I], st State[I]) Context[I] {
	return Context[I]{
		s:  s,
		st: st,
	}
}

// NewSliceContext starts a parse over data, reporting positions as element
// indexes.
func NewSliceContext[I any](data []I) Context[I] {
	return NewContext[I](NewSliceStream(data), IndexState[I](0))
}

func (c Context[I]) Stream() Stream[I] {
	return c.s
}

func (c Context[I]) State() State[I] {
	return c.st
}

func (c Context[I]) Offset() int {
	return c.s.Tell()
}

func (c Context[I]) EOS() bool {
	return c.s.EOS()
}

// Position formats the current diagnostic state.
func (c Context[I]) Position() string {
	return c.st.Format()
}

// Peek returns up to n upcoming elements without moving.
func (c Context[I]) Peek(n int) []I {
	return c.s.Peek(n)
}

// Advance reads up to n elements and folds them into the state.
func (c Context[I]) Advance(n int) ([]I, Context[I]) {
	items, s := c.s.Read(n)
	return items, Context[I]{
		s:  s,
		st: c.st.Update(items),
	}
}

// Backtrack rewinds the stream by n elements and restores a prior state.
func (c Context[I]) Backtrack(n int, prior State[I]) Context[I] {
	return Context[I]{
		s:  c.s.Move(-n),
		st: prior,
	}
}
