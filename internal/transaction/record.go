package transaction

import (
	"fmt"
	"strings"

	"pixcheck/internal/domain"
	"pixcheck/internal/fields"
	"pixcheck/internal/rejection"
)

// recordTokens is the token count of a transaction line:
// origin destiny R$ amount date time code.
const recordTokens = 7

// ParseRecord splits a transaction line on whitespace and rejoins the two
// currency tokens with a single space.
func ParseRecord(line string) (domain.TransactionRecord, error) {
	tokens := strings.Fields(line)
	if len(tokens) != recordTokens {
		return domain.TransactionRecord{}, rejection.New(rejection.CategoryFormat, "transaction", "",
			fmt.Sprintf("expected %d tokens, got %d", recordTokens, len(tokens)))
	}
	return domain.TransactionRecord{
		Origin:       tokens[0],
		Destiny:      tokens[1],
		Amount:       fields.JoinAmount(tokens[2], tokens[3]),
		Date:         tokens[4],
		Time:         tokens[5],
		SecurityCode: tokens[6],
	}, nil
}
