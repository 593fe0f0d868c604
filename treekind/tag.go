package treekind

// Tag secondarily labels a child node to disambiguate otherwise-identical
// siblings, e.g. the two operands of an infix expression.
type Tag int

const (
	NoTag Tag = iota
	Lhs
	Rhs
	Target
	Low
	High
	When
	Then
	Escape
)

func (t Tag) String() string {
	switch t {
	case NoTag:
		return "NoTag"
	case Lhs:
		return "Lhs"
	case Rhs:
		return "Rhs"
	case Target:
		return "Target"
	case Low:
		return "Low"
	case High:
		return "High"
	case When:
		return "When"
	case Then:
		return "Then"
	case Escape:
		return "Escape"
	default:
		return "UnknownTag"
	}
}
