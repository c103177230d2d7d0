package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"simple", "John Smith", "John", "Smith"},
		{"middle name joins last", "Mary Anne Smith-Jones", "Mary", "Anne Smith-Jones"},
		{"single token", "Madonna", "Madonna", ""},
		{"extra whitespace collapses", "  John   Smith  ", "John", "Smith"},
		{"empty", "   ", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitFullName(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestResolveByAccountID(t *testing.T) {
	accounts := newMemAccounts()
	acc := accounts.add(model.Account{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      model.RoleCustomer,
		Origin:    model.OriginRegistered,
		IsActive:  true,
	})
	resolver := NewPartyResolver(accounts)
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, acc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = resolver.Resolve(ctx, 999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveInactiveAccount(t *testing.T) {
	accounts := newMemAccounts()
	acc := accounts.add(model.Account{
		Email:    "gone@example.com",
		Role:     model.RoleCustomer,
		Origin:   model.OriginRegistered,
		IsActive: false,
	})
	resolver := NewPartyResolver(accounts)

	_, err := resolver.Resolve(context.Background(), acc.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveGuestCreatesAccount(t *testing.T) {
	accounts := newMemAccounts()
	resolver := NewPartyResolver(accounts)
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, 0, &GuestDetails{
		FullName: "Mary Anne Smith-Jones",
		Email:    "MARY@Example.com",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "mary@example.com", got.Email)
	assert.Equal(t, "Mary", got.FirstName)
	assert.Equal(t, "Anne Smith-Jones", got.LastName)
	assert.Equal(t, model.RoleCustomer, got.Role)
	assert.Equal(t, model.OriginGuest, got.Origin)
	assert.Equal(t, model.GuestPasswordSentinel, got.PasswordHash)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
}

func TestResolveGuestReusesKnownEmail(t *testing.T) {
	accounts := newMemAccounts()
	existing := accounts.add(model.Account{
		Email:     "repeat@example.com",
		FirstName: "Rita",
		LastName:  "Repeat",
		Role:      model.RoleCustomer,
		Origin:    model.OriginRegistered,
		IsActive:  true,
	})
	resolver := NewPartyResolver(accounts)

	// Same email with a different display name must not create a second
	// account or mutate the stored one.
	got, err := resolver.Resolve(context.Background(), 0, &GuestDetails{
		FullName: "Completely Different",
		Email:    "repeat@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "Rita", got.FirstName)
	assert.Len(t, accounts.rows, 1)
}

func TestResolveGuestValidation(t *testing.T) {
	resolver := NewPartyResolver(newMemAccounts())
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, 0, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = resolver.Resolve(ctx, 0, &GuestDetails{FullName: "No Email"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = resolver.Resolve(ctx, 0, &GuestDetails{Email: "no-name@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}
