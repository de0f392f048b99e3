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

// grantSkill puts a skill into the registry and attaches it to the wallet.
func grantSkill(t *testing.T, store *memory.Store, wallet, name string) {
	t.Helper()
	skill, err := store.Skills().GetOrCreate(name, "")
	require.NoError(t, err)
	require.NoError(t, store.Skills().AddToUser(wallet, skill.ID))
}

// seedProject inserts an open project owned by testCompanyWallet.
func seedProject(t *testing.T, store *memory.Store, requiredSkills string, prize int64) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:           "Landing page",
		OwnerWallet:    testCompanyWallet,
		PrizeAmount:    decimal.NewFromInt(prize),
		Status:         models.ProjectOpen,
		RequiredSkills: requiredSkills,
	}
	require.NoError(t, store.Projects().Add(project))
	return project
}

func TestCreateSubmission(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "react", 100)
	grantSkill(t, store, testFreelancerWallet, "React")

	submission, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
		PRLink:           "https://github.com/acme/webapp/pull/42",
		SubmissionText:   "done",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, submission.Status)
	assert.False(t, submission.IsMerged)
	assert.Equal(t, "acme", submission.RepoOwner)
	assert.Equal(t, "webapp", submission.RepoName)
	assert.Equal(t, 42, submission.PRNumber)
}

func TestCreateSubmission_UnparsablePRLinkStillAccepted(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "", 100)

	submission, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
		PRLink:           "some notes, no link",
	})
	require.NoError(t, err)
	assert.Equal(t, "unknown", submission.RepoOwner)
	assert.Equal(t, "unknown", submission.RepoName)
	assert.Equal(t, 0, submission.PRNumber)
}

func TestCreateSubmission_ProjectNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())

	_, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        uuid.New(),
		FreelancerWallet: testFreelancerWallet,
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateSubmission_ProjectNotOpen(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "", 100)
	project.Status = models.ProjectClosed
	require.NoError(t, store.Projects().Update(project))

	_, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
	})
	assert.ErrorIs(t, err, errs.ErrProjectClosed)
	assert.Equal(t, 409, asApiErr(t, err).StatusCode)
}

func TestCreateSubmission_OwnProject(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "", 100)

	_, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testCompanyWallet,
	})
	assert.ErrorIs(t, err, errs.ErrSelfSubmission)
	assert.Equal(t, 403, asApiErr(t, err).StatusCode)
}

func TestCreateSubmission_MissingSkill(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "react, sql", 100)
	grantSkill(t, store, testFreelancerWallet, "sql")

	_, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
	})
	require.True(t, errs.IsMissingSkill(err))
	assert.Contains(t, asApiErr(t, err).Details, "Missing required skill: react")

	// Nothing was inserted.
	submissions, listErr := store.Submissions().ListByProject(project.ID)
	require.NoError(t, listErr)
	assert.Empty(t, submissions)
}

func TestCreateSubmission_SkillCheckIgnoresCase(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "React", 100)
	grantSkill(t, store, testFreelancerWallet, "REACT")

	_, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
	})
	assert.NoError(t, err)
}

func TestUpdateLink(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "", 100)

	submission, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
		PRLink:           "https://github.com/acme/webapp/pull/1",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateLink(context.Background(), submission.ID, testFreelancerWallet,
		"https://github.com/acme/webapp/pull/2")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.PRNumber)

	// Only the submitter may patch the link.
	_, err = svc.UpdateLink(context.Background(), submission.ID, testOtherWallet,
		"https://github.com/acme/webapp/pull/3")
	assert.Equal(t, 403, asApiErr(t, err).StatusCode)
}

func TestDeleteSubmission(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "", 100)

	freelancerKey, freelancerWallet := newSigningWallet(t)
	submission, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: freelancerWallet,
	})
	require.NoError(t, err)

	t.Run("stranger is rejected before the signature check", func(t *testing.T) {
		err := svc.Delete(context.Background(), submission.ID, testOtherWallet, "0x00", "n1")
		assert.Equal(t, 403, asApiErr(t, err).StatusCode)
	})

	t.Run("submitter with a bad signature is rejected", func(t *testing.T) {
		err := svc.Delete(context.Background(), submission.ID, freelancerWallet, "0xdeadbeef", "n1")
		assert.True(t, errs.IsUnauthorized(err))
	})

	t.Run("submitter with a valid signature deletes", func(t *testing.T) {
		sig := signOperation(freelancerKey, ActionSubmissionDelete, submission.ID.String(), freelancerWallet, "n1")
		require.NoError(t, svc.Delete(context.Background(), submission.ID, freelancerWallet, sig, "n1"))

		gone, err := store.Submissions().FindByID(submission.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestDeleteSubmission_ProjectOwnerMayDelete(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())

	ownerKey, ownerWallet := newSigningWallet(t)
	project := &models.Project{
		Name:        "Cleanup",
		OwnerWallet: ownerWallet,
		PrizeAmount: decimal.NewFromInt(10),
		Status:      models.ProjectOpen,
	}
	require.NoError(t, store.Projects().Add(project))

	submission, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
	})
	require.NoError(t, err)

	sig := signOperation(ownerKey, ActionSubmissionDelete, submission.ID.String(), ownerWallet, "n1")
	require.NoError(t, svc.Delete(context.Background(), submission.ID, ownerWallet, sig, "n1"))
}

func TestRejectSubmission(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())
	project := seedProject(t, store, "", 100)

	submission, err := svc.Create(context.Background(), SubmitParams{
		ProjectID:        project.ID,
		FreelancerWallet: testFreelancerWallet,
	})
	require.NoError(t, err)

	// Only the project owner may reject.
	_, err = svc.Reject(context.Background(), submission.ID, testFreelancerWallet, "nope")
	assert.Equal(t, 403, asApiErr(t, err).StatusCode)

	rejected, err := svc.Reject(context.Background(), submission.ID, testCompanyWallet, "does not build")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, rejected.Status)
	assert.False(t, rejected.IsMerged)

	// Rejection is terminal.
	_, err = svc.Reject(context.Background(), submission.ID, testCompanyWallet, "again")
	assert.True(t, errs.IsAlreadyAwarded(err))
}

func TestRejectSubmission_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubmissionService(store, NewWalletVerifier())

	_, err := svc.Reject(context.Background(), uuid.New(), testCompanyWallet, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
