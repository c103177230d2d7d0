package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// GuestDetails is the free-text tuple a walk-in supplies instead of an
// account id. Name and Email are mandatory; Phone is optional.
type GuestDetails struct {
	FullName string
	Email    string
	Phone    string
}

// PartyResolver maps an incoming reservation request to a concrete account:
// it reuses an existing account by id or contact email, or provisions a new
// guest account from the free-text tuple. At most one account row is created
// per call, and never for an already-known email.
type PartyResolver struct {
	accounts AccountStore
}

// NewPartyResolver returns a PartyResolver over the given account store.
func NewPartyResolver(accounts AccountStore) *PartyResolver {
	return &PartyResolver{accounts: accounts}
}

// Resolve returns the account to attach the reservation to. Exactly one of
// accountID (non-zero) or guest must be supplied.
func (p *PartyResolver) Resolve(ctx context.Context, accountID uint64, guest *GuestDetails) (*model.Account, error) {
	if accountID != 0 {
		acc, err := p.accounts.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil, notFoundf("account %d", accountID)
			}
			return nil, err
		}
		if !acc.IsActive {
			return nil, notFoundf("account %d is not active", accountID)
		}
		return acc, nil
	}
	if guest == nil {
		return nil, validationf("either an account id or guest details are required")
	}
	return p.resolveGuest(ctx, guest)
}

func (p *PartyResolver) resolveGuest(ctx context.Context, guest *GuestDetails) (*model.Account, error) {
	email := strings.ToLower(strings.TrimSpace(guest.Email))
	name := strings.TrimSpace(guest.FullName)
	if email == "" {
		return nil, validationf("guest email is required")
	}
	if name == "" {
		return nil, validationf("guest name is required")
	}

	// Reuse a known email verbatim. No mutation, no duplicate row: repeat
	// guests resolve to the account created by their first reservation.
	existing, err := p.accounts.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, err
	}

	first, last := SplitFullName(name)
	acc := &model.Account{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		Role:         model.RoleCustomer,
		Origin:       model.OriginGuest,
		PasswordHash: model.GuestPasswordSentinel,
		IsActive:     true,
	}
	if phone := strings.TrimSpace(guest.Phone); phone != "" {
		acc.Phone = &phone
	}
	if err := p.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost a race with a concurrent guest creation for the same
			// email; the winning row is the account to reuse.
			return p.accounts.FindByEmail(ctx, email)
		}
		return nil, err
	}
	return acc, nil
}

// SplitFullName trims the input and splits it on whitespace, collapsing
// repeated separators. The first token becomes the first name; the remaining
// tokens, rejoined with single spaces, become the last name. A single-token
// name yields an empty (not null) last name. Hyphenated tokens are one token
// and pass through verbatim.
func SplitFullName(full string) (first, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}
