package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnledger/backend/database/memory"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

const (
	testCompanyWallet    = "0x1111111111111111111111111111111111111111"
	testFreelancerWallet = "0x2222222222222222222222222222222222222222"
	testOtherWallet      = "0x3333333333333333333333333333333333333333"
)

func asApiErr(t *testing.T, err error) *errs.ApiErr {
	t.Helper()
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

func TestRegister(t *testing.T) {
	store := memory.NewStore()
	svc := NewRegistrationService(store)

	profile, err := svc.Register(context.Background(), RegisterParams{
		Wallet: "0x2222222222222222222222222222222222222222",
		Role:   models.RoleFreelancer,
		Name:   "Ada",
		Skills: "React, node, REACT",
	})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, testFreelancerWallet, profile.Wallet)
	assert.Equal(t, models.RoleFreelancer, profile.Role)

	// The free-text skills end up in the skill registry, deduplicated
	// case-insensitively.
	skills, err := svc.Skills(context.Background(), testFreelancerWallet)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "node", skills[0].Slug)
	assert.Equal(t, "react", skills[1].Slug)
}

func TestRegister_NormalizesWalletCasing(t *testing.T) {
	store := memory.NewStore()
	svc := NewRegistrationService(store)

	profile, err := svc.Register(context.Background(), RegisterParams{
		Wallet: "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		Role:   models.RoleCompany,
		Name:   "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", profile.Wallet)
}

func TestRegister_DuplicateWallet(t *testing.T) {
	store := memory.NewStore()
	svc := NewRegistrationService(store)

	_, err := svc.Register(context.Background(), RegisterParams{
		Wallet: "0xabcdabcdabcdabcdabcdabcdabcdabcdabcdabcd",
		Role:   models.RoleCompany,
		Name:   "Acme",
	})
	require.NoError(t, err)

	// Same wallet, different casing: still one profile per wallet.
	_, err = svc.Register(context.Background(), RegisterParams{
		Wallet: "0xABCDABCDABCDABCDABCDABCDABCDABCDABCDABCD",
		Role:   models.RoleFreelancer,
		Name:   "Someone Else",
	})
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.Equal(t, 409, asApiErr(t, err).StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	store := memory.NewStore()
	svc := NewRegistrationService(store)

	tests := []struct {
		name   string
		params RegisterParams
	}{
		{"invalid wallet", RegisterParams{Wallet: "nope", Role: models.RoleCompany, Name: "Acme"}},
		{"missing wallet", RegisterParams{Role: models.RoleCompany, Name: "Acme"}},
		{"invalid role", RegisterParams{Wallet: testCompanyWallet, Role: "admin", Name: "Acme"}},
		{"missing name", RegisterParams{Wallet: testCompanyWallet, Role: models.RoleCompany}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.params)
			assert.Equal(t, 400, asApiErr(t, err).StatusCode)
		})
	}
}

func TestSkills_UnregisteredWallet(t *testing.T) {
	store := memory.NewStore()
	svc := NewRegistrationService(store)

	_, err := svc.Skills(context.Background(), testOtherWallet)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
