package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint onto the router
func setupRoutes(r chi.Router, handlers *routeHandlers, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Profile endpoints
		r.Post("/register", handlers.profileHandler.register())
		r.Get("/profile/{wallet}", handlers.profileHandler.getProfile())
		r.Get("/profile/{wallet}/skills", handlers.profileHandler.getProfileSkills())
		r.Post("/profile/{wallet}/skills", handlers.skillHandler.addSkillToUser())

		// Skill endpoints
		r.Post("/skills", handlers.skillHandler.createSkill())
		r.Get("/skills/{slug}", handlers.skillHandler.getSkill())

		// Project endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/project/{projectID}/submissions", handlers.submissionHandler.listByProject())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/projects/{projectID}/status", handlers.projectHandler.setStatus())
		r.Post("/projects/{projectID}/assign", handlers.projectHandler.assignFreelancer())
		r.Delete("/projects/{projectID}/assign", handlers.projectHandler.unassignFreelancer())

		// Submission endpoints
		r.Post("/submissions/create", handlers.submissionHandler.createSubmission())
		r.Post("/submissions/approve", handlers.submissionHandler.approveSubmission())
		r.Post("/submissions/delete", handlers.submissionHandler.deleteSubmission())
		r.Put("/submissions/{submissionID}", handlers.submissionHandler.updateSubmission())
		r.Post("/submissions/{submissionID}/reject", handlers.submissionHandler.rejectSubmission())

		// Balance read endpoint; mutation only happens through the award workflow
		r.Get("/balance/{wallet}", handlers.balanceHandler.getBalance())

		// External triggers
		r.Post("/webhooks/pr-merged", handlers.webhookHandler.prMerged())

		r.Get("/health", healthHandler(startupTime))
	})
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"status":"ok","uptime":"` + time.Since(startupTime).Round(time.Second).String() + `"}`))
	}
}
