package vm

// Stack is the value stack shared by the unlocking and locking scripts of one
// input. The zero value is an empty stack.
type Stack struct {
	items [][]byte
}

// NewStack returns a stack holding items, the last one on top.
func NewStack(items ...[]byte) *Stack {
	s := &Stack{}
	for _, item := range items {
		s.Push(item)
	}
	return s
}

// Push places a copy of item on top of the stack.
func (s *Stack) Push(item []byte) {
	s.items = append(s.items, clone(item))
}

// Pop removes and returns the top item. It reports false on an empty stack.
func (s *Stack) Pop() ([]byte, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Peek returns the top item without removing it.
func (s *Stack) Peek() ([]byte, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy of the stack, bottom first.
func (s *Stack) Items() [][]byte {
	out := make([][]byte, len(s.items))
	for i, item := range s.items {
		out[i] = clone(item)
	}
	return out
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
