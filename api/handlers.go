package api

import (
	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Transactor, webhookSecret string) *routeHandlers {
	verifier := services.NewWalletVerifier()

	awardService := services.NewAwardService(db, verifier)
	return &routeHandlers{
		profileHandler:    newProfileHandler(services.NewRegistrationService(db), db),
		skillHandler:      newSkillHandler(db),
		projectHandler:    newProjectHandler(services.NewProjectService(db, verifier), db),
		submissionHandler: newSubmissionHandler(services.NewSubmissionService(db, verifier), awardService, db),
		balanceHandler:    newBalanceHandler(db),
		webhookHandler:    newWebhookHandler(awardService, webhookSecret),
	}
}
