package domain

// TransactionRecord is one phase-two line. Amount is already rejoined from its
// two tokens ("R$" and "1.000,00") with a single space.
type TransactionRecord struct {
	Origin       string
	Destiny      string
	Amount       string
	Date         string
	Time         string
	SecurityCode string
}
