// Package record implements the business rules for phone-address records.
// It is the only component that decides existence-based outcomes; the HTTP
// layer above it translates outcomes to status codes and the store below
// it knows nothing about records.
package record

import (
	"context"

	"phoneaddr/internal/errors"
	"phoneaddr/internal/store"
)

// keyPrefix namespaces record keys inside the shared flat key space
const keyPrefix = "phone_address:"

// Record is the phone-to-address association, the sole persisted entity
type Record struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Service owns the business rules for records
type Service struct {
	kv store.KV
}

// NewService creates a record service on top of a key-value store
func NewService(kv store.KV) *Service {
	return &Service{kv: kv}
}

// Key builds the store key for a phone number. The phone is used verbatim;
// keys are not normalized.
func Key(phone string) string {
	return keyPrefix + phone
}

// Get returns the record for phone, or a NOT_FOUND error
func (s *Service) Get(ctx context.Context, phone string) (*Record, error) {
	address, ok, err := s.kv.Get(ctx, Key(phone))
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "store get failed", err)
	}
	if !ok {
		return nil, errors.New(errors.NotFound, "phone number not found")
	}
	return &Record{Phone: phone, Address: address}, nil
}

// Create stores a new record. The write is atomic set-if-absent, so two
// concurrent creates for the same phone cannot both succeed.
func (s *Service) Create(ctx context.Context, phone, address string) (*Record, error) {
	created, err := s.kv.SetNX(ctx, Key(phone), address)
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "store set failed", err)
	}
	if !created {
		return nil, errors.New(errors.AlreadyExists, "phone number already exists")
	}
	return &Record{Phone: phone, Address: address}, nil
}

// Update replaces the address of an existing record, or returns NOT_FOUND.
// The exists check and the write are separate store calls; a concurrent
// delete between them can resurrect the key. That window is accepted.
func (s *Service) Update(ctx context.Context, phone, address string) (*Record, error) {
	key := Key(phone)

	exists, err := s.kv.Exists(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "store exists failed", err)
	}
	if !exists {
		return nil, errors.New(errors.NotFound, "phone number not found")
	}

	if err := s.kv.Set(ctx, key, address); err != nil {
		return nil, errors.Wrap(errors.StoreUnavailable, "store set failed", err)
	}
	return &Record{Phone: phone, Address: address}, nil
}

// Delete removes the record for phone, or returns NOT_FOUND. It relies on
// the store's removal indicator instead of a separate exists call.
func (s *Service) Delete(ctx context.Context, phone string) error {
	removed, err := s.kv.Delete(ctx, Key(phone))
	if err != nil {
		return errors.Wrap(errors.StoreUnavailable, "store delete failed", err)
	}
	if !removed {
		return errors.New(errors.NotFound, "phone number not found")
	}
	return nil
}
