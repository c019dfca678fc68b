package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixcheck/internal/platform/metrics"
	"pixcheck/internal/registry"
	"pixcheck/internal/rejection"
	"pixcheck/pkg/platform/sentinel"
	bdd "pixcheck/pkg/testutil"
)

var (
	sampleClients = []string{
		"136.775.118-79 pmlxew@veracg.com +55(92)3584-0188",
		"90.400.888/0001-42 D5.D9.A9.b6",
	}
	sampleTransactions = []string{
		"pmlxew@veracg.com 90.400.888/0001-42 R$ 100,00 11/12/2022 18:06 @@XHn6az31O9",
		"D5.D9.A9.b6 +55(92)3584-0188 R$ 25,89 13/01/2022 10:21 W1%U(7od43Li",
	}
)

func TestRun_EndToEnd(t *testing.T) {
	ctx := context.Background()

	bdd.Given(t, "two registered clients and two well-formed transactions", func(t *testing.T) {
		bdd.When(t, "the stream is validated", func(t *testing.T) {
			result := New().Run(ctx, bdd.Scenario(sampleClients, sampleTransactions))

			bdd.Then(t, "the run is valid", func(t *testing.T) {
				assert.True(t, result.Valid)
				assert.NoError(t, result.Err)
				assert.Equal(t, 2, result.Clients)
				assert.Equal(t, 2, result.Transactions)
				assert.Equal(t, 5, result.Lines)
			})
		})
	})

	bdd.Given(t, "one client per line with a single key each", func(t *testing.T) {
		clients := []string{
			"136.775.118-79 pmlxew@veracg.com",
			"90.400.888/0001-42 D5.D9.A9.b6",
		}
		txs := []string{
			"pmlxew@veracg.com D5.D9.A9.b6 R$ 1.000,00 13/12/2022 23:40 s%%B9F7cB19t",
			"D5.D9.A9.b6 136.775.118-79 R$ 57,52 29/07/2022 13:45 6O31iJa7dZ*%",
		}
		result := New().Run(ctx, bdd.Scenario(clients, txs))

		bdd.Then(t, "identifiers can be used as transaction endpoints", func(t *testing.T) {
			assert.True(t, result.Valid)
		})
	})

	bdd.Given(t, "a transaction whose destiny was never registered", func(t *testing.T) {
		txs := []string{
			"pmlxew@veracg.com ghost@nowhere.com R$ 100,00 11/12/2022 18:06 @@XHn6az31O9",
			sampleTransactions[1],
		}
		src := bdd.Scenario(sampleClients, txs)
		result := New().Run(ctx, src)

		bdd.Then(t, "the run is invalid", func(t *testing.T) {
			assert.False(t, result.Valid)
			assert.ErrorIs(t, result.Err, sentinel.ErrUnknownKey)
		})

		bdd.And(t, "no later transaction is read", func(t *testing.T) {
			assert.Equal(t, 4, src.Consumed())
			assert.Equal(t, 0, result.Transactions)
		})
	})
}

func TestRun_Idempotent(t *testing.T) {
	c := New()
	for _, txs := range [][]string{sampleTransactions, {"x y R$ 1,00 01/01/2022 00:00 code"}} {
		first := c.Run(context.Background(), bdd.Scenario(sampleClients, txs))
		second := c.Run(context.Background(), bdd.Scenario(sampleClients, txs))
		assert.Equal(t, first.Valid, second.Valid)
		assert.Equal(t, first.Lines, second.Lines)
	}
}

func TestRun_RegistrationFailures(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		category rejection.Category
		line     int
	}{
		{
			name:     "non-hex quick key",
			lines:    []string{"04.128.563/0001-10 zxhbpg@jmurip.com +55(92)3656-8985", "62.144.175/0001-20 L2.B3.D5.a7", bdd.Sentinel},
			category: rejection.CategoryFormat,
			line:     2,
		},
		{
			name:     "bad check digits",
			lines:    []string{"136.775.118-97", bdd.Sentinel},
			category: rejection.CategoryChecksum,
			line:     1,
		},
		{
			name:     "empty client line",
			lines:    []string{sampleClients[0], "", bdd.Sentinel},
			category: rejection.CategoryFormat,
			line:     2,
		},
		{
			name:     "key registered by two clients",
			lines:    []string{"136.775.118-79 pmlxew@veracg.com", "90.400.888/0001-42 pmlxew@veracg.com", bdd.Sentinel},
			category: rejection.CategoryConflict,
			line:     2,
		},
		{
			name:     "input ends before the sentinel",
			lines:    sampleClients,
			category: rejection.CategoryTruncated,
			line:     2,
		},
		{
			name:     "sentinel with trailing text is a client line",
			lines:    []string{"========== extra"},
			category: rejection.CategoryFormat,
			line:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Run(context.Background(), bdd.NewLines(tt.lines...))
			require.False(t, result.Valid)

			var rej *rejection.Error
			require.ErrorAs(t, result.Err, &rej)
			assert.Equal(t, tt.category, rej.Category)
			assert.Equal(t, tt.line, rej.Line)
		})
	}
}

func TestRun_TransactionPhaseEdges(t *testing.T) {
	t.Run("no transactions is valid", func(t *testing.T) {
		result := New().Run(context.Background(), bdd.Scenario(sampleClients, nil))
		assert.True(t, result.Valid)
	})

	t.Run("no clients and no transactions is valid", func(t *testing.T) {
		result := New().Run(context.Background(), bdd.Scenario(nil, nil))
		assert.True(t, result.Valid)
	})

	t.Run("short transaction line", func(t *testing.T) {
		result := New().Run(context.Background(), bdd.Scenario(sampleClients, []string{"pmlxew@veracg.com"}))
		assert.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, sentinel.ErrFormat)
	})

	t.Run("blank transaction line", func(t *testing.T) {
		result := New().Run(context.Background(), bdd.Scenario(sampleClients, []string{""}))
		assert.False(t, result.Valid)
	})

	t.Run("amount with thousands separator", func(t *testing.T) {
		txs := []string{"pmlxew@veracg.com D5.D9.A9.b6 R$ 1.000,00 13/12/2022 23:40 s%%B9F7cB19t"}
		result := New().Run(context.Background(), bdd.Scenario(sampleClients, txs))
		assert.True(t, result.Valid)
	})

	t.Run("windows line endings", func(t *testing.T) {
		clients := []string{sampleClients[0] + "\r", sampleClients[1] + "\r"}
		lines := append(append(clients, bdd.Sentinel+"\r"), sampleTransactions[0]+"\r")
		result := New().Run(context.Background(), bdd.NewLines(lines...))
		assert.True(t, result.Valid)
	})

	t.Run("source failure during transactions", func(t *testing.T) {
		src := bdd.Scenario(sampleClients, sampleTransactions).FailAfter(4)
		result := New().Run(context.Background(), src)
		assert.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, bdd.ErrSourceBroken)
		assert.Equal(t, rejection.CategorySource, rejection.GetCategory(result.Err))
	})

	t.Run("source failure during registration", func(t *testing.T) {
		src := bdd.Scenario(sampleClients, sampleTransactions).FailAfter(1)
		result := New().Run(context.Background(), src)
		assert.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, sentinel.ErrSource)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result := New().Run(ctx, bdd.Scenario(sampleClients, sampleTransactions))
		assert.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, context.Canceled)
	})
}

func TestRun_OrderingPolicies(t *testing.T) {
	bdd.Given(t, "a transaction from the first client to a key of the second", func(t *testing.T) {
		bdd.When(t, "the registered policy is in effect", func(t *testing.T) {
			c := New(WithPolicy(registry.PolicyRegistered))
			result := c.Run(context.Background(), bdd.Scenario(sampleClients, sampleTransactions))

			bdd.Then(t, "any registered destiny is accepted", func(t *testing.T) {
				assert.True(t, result.Valid)
			})
		})

		bdd.When(t, "the origin-bound policy is in effect", func(t *testing.T) {
			c := New(WithPolicy(registry.PolicyOriginBound))
			result := c.Run(context.Background(), bdd.Scenario(sampleClients, sampleTransactions))

			bdd.Then(t, "the later destiny is rejected", func(t *testing.T) {
				assert.False(t, result.Valid)
				assert.ErrorIs(t, result.Err, sentinel.ErrOrdering)
			})
		})
	})

	bdd.Given(t, "transactions that only pay earlier clients", func(t *testing.T) {
		txs := []string{sampleTransactions[1]}
		c := New(WithPolicy(registry.PolicyOriginBound))
		result := c.Run(context.Background(), bdd.Scenario(sampleClients, txs))

		bdd.Then(t, "the origin-bound policy accepts them", func(t *testing.T) {
			assert.True(t, result.Valid)
		})
	})
}

func TestRun_CustomSentinel(t *testing.T) {
	lines := append(append([]string{}, sampleClients...), "--END--")
	lines = append(lines, sampleTransactions...)

	result := New(WithSentinel("--END--")).Run(context.Background(), bdd.NewLines(lines...))
	assert.True(t, result.Valid)
}

func TestRun_Metrics(t *testing.T) {
	m := metrics.New()
	c := New(WithMetrics(m))

	c.Run(context.Background(), bdd.Scenario(sampleClients, sampleTransactions))
	c.Run(context.Background(), bdd.Scenario(sampleClients, []string{"ghost@nowhere.com x R$ 1,00 01/01/2022 00:00 c"}))

	assert.Equal(t, 4.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues(metrics.PhaseRegistration)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues(metrics.PhaseTransaction)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectionsTotal.WithLabelValues("unknown_key")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.KeysRegisteredTotal.WithLabelValues("identifier")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.KeysRegisteredTotal.WithLabelValues("quick_key")))
}

func TestRun_LogsMaskedRejection(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	txs := []string{"pmlxew@veracg.com ghost@nowhere.com R$ 100,00 11/12/2022 18:06 @@XHn6az31O9"}
	New(WithLogger(log)).Run(context.Background(), bdd.Scenario(sampleClients, txs))

	out := buf.String()
	assert.Contains(t, out, "record stream rejected")
	assert.Contains(t, out, "category=unknown_key")
	assert.Contains(t, out, "run_id=")
	assert.Contains(t, out, "g***@nowhere.com")
	assert.False(t, strings.Contains(out, "ghost@nowhere.com"), "raw key must not be logged")
}

func TestRun_LogsFrozenRegistryAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	New(WithLogger(log)).Run(context.Background(), bdd.Scenario(sampleClients, nil))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "client registered"))
	assert.Contains(t, out, "identifier=***.***.***-79 kind=individual keys=2 start=0 end=3")
	assert.Contains(t, out, "identifier=**.***.***/****-42 kind=corporate keys=1 start=3 end=5")
	assert.NotContains(t, out, "136.775.118-79")
}

func TestRun_RegistryNotLoggedAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	New(WithLogger(log)).Run(context.Background(), bdd.Scenario(sampleClients, nil))

	assert.NotContains(t, buf.String(), "client registered")
}

func TestDecide(t *testing.T) {
	assert.True(t, Decide(true, true))
	assert.False(t, Decide(true, false))
	assert.False(t, Decide(false, true))
	assert.False(t, Decide(false, false))
}

func TestFormatVerdict(t *testing.T) {
	assert.Equal(t, "True", FormatVerdict(true))
	assert.Equal(t, "False", FormatVerdict(false))
}

func TestScannerSource(t *testing.T) {
	src := NewScannerSource(strings.NewReader("a\nb\r\n\nc"))
	var got []string
	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		got = append(got, line)
	}
	require.NoError(t, src.Err())
	assert.Equal(t, []string{"a", "b", "", "c"}, got)
}
