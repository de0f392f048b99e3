package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnledger/backend/database/memory"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
)

func strPtr(s string) *string { return &s }

func TestCreateProject(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	project, err := svc.Create(context.Background(), CreateParams{
		Name:           "Landing page",
		Description:    "Build the landing page",
		OwnerWallet:    "0x1111111111111111111111111111111111111111",
		PrizeAmount:    decimal.NewFromInt(100),
		RequiredSkills: "react, css",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectOpen, project.Status)
	assert.Equal(t, testCompanyWallet, project.OwnerWallet)
	assert.Equal(t, []string{"react", "css"}, project.RequiredSkillList())
	assert.Nil(t, project.AssignedFreelancer)
}

func TestCreateProject_Validation(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	_, err := svc.Create(context.Background(), CreateParams{
		OwnerWallet: testCompanyWallet,
		PrizeAmount: decimal.NewFromInt(10),
	})
	assert.Equal(t, 400, asApiErr(t, err).StatusCode)

	_, err = svc.Create(context.Background(), CreateParams{
		Name:        "x",
		OwnerWallet: "bogus",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidWallet)

	_, err = svc.Create(context.Background(), CreateParams{
		Name:        "x",
		OwnerWallet: testCompanyWallet,
		PrizeAmount: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, errs.ErrInvalidPrize)
}

func TestUpdateProject(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	ownerKey, ownerWallet := newSigningWallet(t)
	project, err := svc.Create(context.Background(), CreateParams{
		Name:        "Landing page",
		OwnerWallet: ownerWallet,
		PrizeAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	newPrize := decimal.NewFromInt(250)
	sig := signOperation(ownerKey, ActionProjectUpdate, project.ID.String(), ownerWallet, "n1")
	updated, err := svc.Update(context.Background(), project.ID, ownerWallet, sig, "n1", UpdateParams{
		Name:        strPtr("Landing page v2"),
		PrizeAmount: &newPrize,
	})
	require.NoError(t, err)
	assert.Equal(t, "Landing page v2", updated.Name)
	assert.True(t, updated.PrizeAmount.Equal(newPrize))
	// Untouched fields keep their values.
	assert.Equal(t, models.ProjectOpen, updated.Status)
}

func TestUpdateProject_RequiresOwnerAndSignature(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	ownerKey, ownerWallet := newSigningWallet(t)
	project, err := svc.Create(context.Background(), CreateParams{
		Name:        "Landing page",
		OwnerWallet: ownerWallet,
		PrizeAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Not the owner.
	_, err = svc.Update(context.Background(), project.ID, testOtherWallet, "0x00", "n1", UpdateParams{})
	assert.Equal(t, 403, asApiErr(t, err).StatusCode)

	// Owner with a garbage signature.
	_, err = svc.Update(context.Background(), project.ID, ownerWallet, "0xdeadbeef", "n1", UpdateParams{})
	assert.True(t, errs.IsUnauthorized(err))

	// Signature for a different project does not transfer.
	otherSig := signOperation(ownerKey, ActionProjectUpdate, uuid.New().String(), ownerWallet, "n1")
	_, err = svc.Update(context.Background(), project.ID, ownerWallet, otherSig, "n1", UpdateParams{})
	assert.True(t, errs.IsUnauthorized(err))
}

func TestDeleteProject(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	ownerKey, ownerWallet := newSigningWallet(t)
	project, err := svc.Create(context.Background(), CreateParams{
		Name:        "Landing page",
		OwnerWallet: ownerWallet,
		PrizeAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	sig := signOperation(ownerKey, ActionProjectDelete, project.ID.String(), ownerWallet, "n1")
	require.NoError(t, svc.Delete(context.Background(), project.ID, ownerWallet, sig, "n1"))

	gone, err := store.Projects().FindByID(project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAssignFreelancer(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	project, err := svc.Create(context.Background(), CreateParams{
		Name:        "Landing page",
		OwnerWallet: testCompanyWallet,
		PrizeAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assigned, err := svc.Assign(context.Background(), project.ID, testFreelancerWallet, testCompanyWallet)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedFreelancer)
	assert.Equal(t, testFreelancerWallet, *assigned.AssignedFreelancer)
	// Assignment does not close the project; only the award workflow does.
	assert.Equal(t, models.ProjectOpen, assigned.Status)

	// Already assigned.
	_, err = svc.Assign(context.Background(), project.ID, testOtherWallet, testCompanyWallet)
	assert.ErrorIs(t, err, errs.ErrAlreadyAssigned)

	unassigned, err := svc.Unassign(context.Background(), project.ID, testCompanyWallet)
	require.NoError(t, err)
	assert.Nil(t, unassigned.AssignedFreelancer)
}

func TestAssignFreelancer_ClosedProject(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	project, err := svc.Create(context.Background(), CreateParams{
		Name:        "Landing page",
		OwnerWallet: testCompanyWallet,
		PrizeAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), project.ID, testCompanyWallet, models.ProjectClosed)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), project.ID, testFreelancerWallet, testCompanyWallet)
	assert.ErrorIs(t, err, errs.ErrProjectClosed)
}

func TestSetStatus(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	project, err := svc.Create(context.Background(), CreateParams{
		Name:        "Landing page",
		OwnerWallet: testCompanyWallet,
		PrizeAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), project.ID, testCompanyWallet, models.ProjectInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectInProgress, updated.Status)

	_, err = svc.SetStatus(context.Background(), project.ID, testCompanyWallet, "archived")
	assert.Equal(t, 400, asApiErr(t, err).StatusCode)

	// Owner check applies to status changes too.
	_, err = svc.SetStatus(context.Background(), project.ID, testOtherWallet, models.ProjectOpen)
	assert.Equal(t, 403, asApiErr(t, err).StatusCode)
}

func TestProjectNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewProjectService(store, NewWalletVerifier())

	_, err := svc.SetStatus(context.Background(), uuid.New(), testCompanyWallet, models.ProjectOpen)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
