package red

// WalkEvent is reported by Walk when entering or leaving an element.
type WalkEvent int

const (
	Enter WalkEvent = iota
	Leave
)

// Visitor is called for every element during Walk. Returning false on Enter
// skips the element's children (Leave is still reported).
type Visitor func(ev WalkEvent, e Element) bool

// Walk visits e and everything below it in document order.
func Walk(e Element, visit Visitor) {
	descend := visit(Enter, e)
	if n, ok := e.(*Node); ok && descend {
		for _, c := range n.ChildrenWithTokens() {
			Walk(c, visit)
		}
	}
	visit(Leave, e)
}
