package typestate

// State is the constraint satisfied by every state tag.
// Tags are zero-size comparable types that report their name.
type State interface {
	comparable
	StateName() string
}

// StateOf is satisfied by tags that peripheral P may be wrapped in.
// A tag declares the fact with a CarriedBy(*P) method; since a type has a
// single method per name, each tag belongs to exactly one peripheral.
type StateOf[P any] interface {
	State
	CarriedBy(*P)
}

// InitialOf is satisfied by the one tag New may produce for P.
type InitialOf[P any] interface {
	StateOf[P]
	InitialOf(*P)
}

// EdgeOf is satisfied by edge tags that make From -> To legal for P.
type EdgeOf[P any, From StateOf[P], To StateOf[P]] interface {
	Allow(*P, From, To)
	EdgeName() string
}

// Peripheral is implemented by peripheral values that declare their
// canonical state set.
type Peripheral interface {
	Graph() *Graph
}

// peripheralPtr lets New infer *P from P and reach its Graph.
type peripheralPtr[P any] interface {
	*P
	Peripheral
}

// NameOf returns the name of state tag S.
func NameOf[S State]() string {
	var s S
	return s.StateName()
}
