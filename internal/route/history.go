package route

// History is a back stack of visited routes. The zero value is empty; use
// NewHistory to start at a path.
type History struct {
	stack []Route
}

// NewHistory starts a history at path.
func NewHistory(path string) *History {
	return &History{stack: []Route{Parse(path)}}
}

// Current returns the active route, or the list route when empty.
func (h *History) Current() Route {
	if len(h.stack) == 0 {
		return Parse(Projects)
	}
	return h.stack[len(h.stack)-1]
}

// Push navigates to path. Pushing the current path again is a no-op and
// reports false.
func (h *History) Push(path string) (Route, bool) {
	r := Parse(path)
	if len(h.stack) > 0 && h.Current().Path == r.Path {
		return r, false
	}
	h.stack = append(h.stack, r)
	return r, true
}

// Replace swaps the current route for path without growing the stack.
func (h *History) Replace(path string) Route {
	r := Parse(path)
	if len(h.stack) == 0 {
		h.stack = append(h.stack, r)
		return r
	}
	h.stack[len(h.stack)-1] = r
	return r
}

// Back pops the current route. It reports false when there is nowhere to go.
func (h *History) Back() (Route, bool) {
	if len(h.stack) <= 1 {
		return h.Current(), false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), true
}

// Len returns the number of routes on the stack.
func (h *History) Len() int { return len(h.stack) }
