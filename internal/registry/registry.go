// Package registry holds the keys admitted during the registration phase and
// resolves transaction endpoints against them.
//
// Every admitted key, including each client's own identifier, receives the
// next value of a single counter shared by all clients. A client owns the
// half-open range of indices it contributed. The registry is written during
// registration, frozen, then only read while transactions are checked; the
// two phases never overlap, so it takes no locks.
package registry

import (
	"errors"
	"fmt"

	"pixcheck/internal/checksum"
	"pixcheck/internal/domain"
	"pixcheck/internal/fields"
	"pixcheck/internal/rejection"
	"pixcheck/pkg/platform/privacy"
	"pixcheck/pkg/platform/sentinel"
)

// ErrFrozen is returned when Register is called after Freeze.
var ErrFrozen = errors.New("registry is frozen")

// Registry maps keys to registration indices and indices to owning clients.
type Registry struct {
	policy  Policy
	index   map[string]int
	owner   []int // registration index -> position in clients
	clients []domain.ClientRecord
	frozen  bool
}

type Option func(*Registry)

// WithPolicy selects the ordering policy used by ResolveDestiny.
func WithPolicy(p Policy) Option {
	return func(r *Registry) {
		r.policy = p
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		policy: DefaultPolicy,
		index:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates a client line and admits its identifier and keys in
// order. Nothing is admitted unless the identifier and every key pass, and
// no key may already be owned by any client.
func (r *Registry) Register(identifier string, keys []string) (domain.ClientRecord, error) {
	if r.frozen {
		return domain.ClientRecord{}, ErrFrozen
	}

	kind, err := checksum.Check(identifier)
	if err != nil {
		category := rejection.CategoryFormat
		if errors.Is(err, sentinel.ErrChecksum) {
			category = rejection.CategoryChecksum
		}
		rej := rejection.New(category, "identifier", privacy.MaskToken(identifier), "identifier rejected")
		rej.Underlying = err
		return domain.ClientRecord{}, rej
	}

	admitted := make([]domain.Key, 0, len(keys))
	seen := map[string]struct{}{identifier: {}}
	for _, raw := range keys {
		keyKind, ok := fields.ValidateKey(raw)
		if !ok {
			return domain.ClientRecord{}, rejection.New(rejection.CategoryFormat, "key",
				privacy.MaskToken(raw), fmt.Sprintf("not a valid %s key", keyKind))
		}
		if _, dup := seen[raw]; dup {
			return domain.ClientRecord{}, conflict(raw)
		}
		seen[raw] = struct{}{}
		admitted = append(admitted, domain.Key{Value: raw, Kind: keyKind})
	}
	if _, taken := r.index[identifier]; taken {
		return domain.ClientRecord{}, conflict(identifier)
	}
	for _, k := range admitted {
		if _, taken := r.index[k.Value]; taken {
			return domain.ClientRecord{}, conflict(k.Value)
		}
	}

	position := len(r.clients)
	record := domain.ClientRecord{
		Identifier: identifier,
		Kind:       kind,
		Keys:       admitted,
		Start:      len(r.owner),
	}
	r.admit(identifier, position)
	for _, k := range admitted {
		r.admit(k.Value, position)
	}
	record.End = len(r.owner)
	r.clients = append(r.clients, record)
	return record, nil
}

func (r *Registry) admit(value string, position int) {
	r.index[value] = len(r.owner)
	r.owner = append(r.owner, position)
}

func conflict(value string) *rejection.Error {
	return rejection.New(rejection.CategoryConflict, "key", privacy.MaskToken(value), "key already registered")
}

// Freeze ends the registration phase. Later calls to Register fail.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// ResolveOrigin returns the registration index of key.
func (r *Registry) ResolveOrigin(key string) (int, error) {
	idx, ok := r.index[key]
	if !ok {
		return 0, rejection.New(rejection.CategoryUnknownKey, "origin", privacy.MaskToken(key), "origin key not registered")
	}
	return idx, nil
}

// ResolveDestiny returns the registration index of key if it is registered
// and the ordering policy accepts it for the given origin index.
func (r *Registry) ResolveDestiny(key string, originIndex int) (int, error) {
	idx, ok := r.index[key]
	if !ok {
		return 0, rejection.New(rejection.CategoryUnknownKey, "destiny", privacy.MaskToken(key), "destiny key not registered")
	}
	origin, ok := r.Owner(originIndex)
	if !ok {
		return 0, rejection.New(rejection.CategoryUnknownKey, "origin", "", "origin index out of range")
	}
	if !r.policy.permits(idx, origin.End) {
		return 0, rejection.New(rejection.CategoryOrdering, "destiny", privacy.MaskToken(key),
			fmt.Sprintf("destiny registered after origin client (policy %s)", r.policy))
	}
	return idx, nil
}

// Policy returns the ordering policy in effect.
func (r *Registry) Policy() Policy {
	return r.policy
}

// Len returns the number of admitted keys, identifiers included.
func (r *Registry) Len() int {
	return len(r.owner)
}

// Clients returns the registered clients in registration order.
func (r *Registry) Clients() []domain.ClientRecord {
	return append([]domain.ClientRecord{}, r.clients...)
}

// Owner returns the client that owns a registration index.
func (r *Registry) Owner(index int) (domain.ClientRecord, bool) {
	if index < 0 || index >= len(r.owner) {
		return domain.ClientRecord{}, false
	}
	return r.clients[r.owner[index]], true
}
