package domain

// IdentifierKind classifies a client tax identifier by its shape.
type IdentifierKind int

const (
	IdentifierInvalid IdentifierKind = iota
	// IdentifierIndividual is the 11-digit CPF form DDD.DDD.DDD-DD.
	IdentifierIndividual
	// IdentifierCorporate is the 14-digit CNPJ form DD.DDD.DDD/DDDD-DD.
	IdentifierCorporate
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierIndividual:
		return "individual"
	case IdentifierCorporate:
		return "corporate"
	default:
		return "invalid"
	}
}

// KeyKind is the tagged variant a payment key is classified into before any
// grammar check runs. Classification looks at shape only.
type KeyKind int

const (
	KeyInvalid KeyKind = iota
	KeyEmail
	KeyPhone
	KeyQuick
	// KeyIdentifier marks a client's own tax identifier when it is admitted
	// to the registry alongside that client's keys.
	KeyIdentifier
)

func (k KeyKind) String() string {
	switch k {
	case KeyEmail:
		return "email"
	case KeyPhone:
		return "phone"
	case KeyQuick:
		return "quick_key"
	case KeyIdentifier:
		return "identifier"
	default:
		return "invalid"
	}
}

// Key is a payment alias that passed validation.
type Key struct {
	Value string
	Kind  KeyKind
}
