package domain

// DefaultSentinel is the line that ends client registration unless a run is
// configured with another one.
const DefaultSentinel = "=========="

// ClientRecord is one registered client: its identifier, the keys it owns in
// line order, and the half-open range [Start, End) of registration indices it
// contributed. The identifier itself holds index Start.
type ClientRecord struct {
	Identifier string
	Kind       IdentifierKind
	Keys       []Key
	Start      int
	End        int
}
