package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/learnledger/backend/database"
	"github.com/learnledger/backend/errs"
	"github.com/learnledger/backend/models"
	"github.com/learnledger/backend/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
	db        database.Stores
}

func newProjectHandler(projects *services.ProjectService, db database.Stores) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		db:        db,
	}
}

// ProjectCollection represents a page of projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// getAllProjects retrieves a filtered page of projects
// @Summary List projects
// @Description Lists projects filtered by status, skill, owner, prize range and free-text search
// @Tags Projects
// @Produce json
// @Param status query string false "Project status"
// @Param skill query string false "Required skill (contains match)"
// @Param owner query string false "Owner wallet"
// @Param minPrize query string false "Minimum prize"
// @Param maxPrize query string false "Maximum prize"
// @Param q query string false "Free-text search on name and description"
// @Param sort query string false "Sort column: created, prize or name"
// @Param order query string false "asc or desc"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Page offset"
// @Success 200 {object} ProjectCollection "Page of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := projectFilterFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, total, err := h.db.Projects().List(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		if projects == nil {
			projects = []models.Project{}
		}

		h.responder.WriteSuccess(w, "", ProjectCollection{
			Projects: projects,
			Total:    total,
			Limit:    filter.Limit,
			Offset:   filter.Offset,
		})
	}
}

func projectFilterFromQuery(r *http.Request) (database.ProjectFilter, error) {
	q := r.URL.Query()
	filter := database.ProjectFilter{
		Status:      models.ProjectStatus(q.Get("status")),
		Skill:       q.Get("skill"),
		OwnerWallet: q.Get("owner"),
		Search:      q.Get("q"),
		SortBy:      q.Get("sort"),
		SortDesc:    q.Get("order") == "desc",
	}
	if filter.Status != "" && !models.ValidProjectStatus(filter.Status) {
		return filter, errs.NewBadRequestErrorWithField("invalid status", "status",
			"status must be one of open, in-progress, closed")
	}
	if v := q.Get("minPrize"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			return filter, errs.NewBadRequestErrorWithField("invalid minPrize", "minPrize", err.Error())
		}
		filter.MinPrize = &min
	}
	if v := q.Get("maxPrize"); v != "" {
		max, err := decimal.NewFromString(v)
		if err != nil {
			return filter, errs.NewBadRequestErrorWithField("invalid maxPrize", "maxPrize", err.Error())
		}
		filter.MaxPrize = &max
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errs.NewBadRequestErrorWithField("invalid limit", "limit", err.Error())
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errs.NewBadRequestErrorWithField("invalid offset", "offset", err.Error())
		}
		filter.Offset = n
	}
	filter.Normalize()
	return filter, nil
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.db.Projects().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.responder.WriteSuccess(w, "", project)
	}
}

type createProjectRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	OwnerWallet      string `json:"walletAddress"`
	PrizeAmount      string `json:"prizeAmount,omitempty"`
	RequiredSkills   string `json:"requiredSkills,omitempty"`
	CompletionSkills string `json:"completionSkills,omitempty"`
	RepoURL          string `json:"repo,omitempty"`
}

// createProject creates a new open project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		prize := decimal.Zero
		if req.PrizeAmount != "" {
			var err error
			prize, err = decimal.NewFromString(req.PrizeAmount)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidPrizeError(err.Error()))
				return
			}
		}

		project, err := h.projects.Create(r.Context(), services.CreateParams{
			Name:             req.Name,
			Description:      req.Description,
			OwnerWallet:      req.OwnerWallet,
			PrizeAmount:      prize,
			RequiredSkills:   req.RequiredSkills,
			CompletionSkills: req.CompletionSkills,
			RepoURL:          req.RepoURL,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, "project created", project)
	}
}

type updateProjectRequest struct {
	WalletAddress    string  `json:"walletAddress"`
	Signature        string  `json:"signature"`
	Nonce            string  `json:"nonce"`
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	PrizeAmount      *string `json:"prizeAmount,omitempty"`
	RequiredSkills   *string `json:"requiredSkills,omitempty"`
	CompletionSkills *string `json:"completionSkills,omitempty"`
	RepoURL          *string `json:"repo,omitempty"`
}

// updateProject patches an existing project. Owner-only; the request must
// carry a wallet signature over the operation.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		params := services.UpdateParams{
			Name:             req.Name,
			Description:      req.Description,
			RequiredSkills:   req.RequiredSkills,
			CompletionSkills: req.CompletionSkills,
			RepoURL:          req.RepoURL,
		}
		if req.PrizeAmount != nil {
			prize, err := decimal.NewFromString(*req.PrizeAmount)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidPrizeError(err.Error()))
				return
			}
			params.PrizeAmount = &prize
		}

		project, err := h.projects.Update(r.Context(), projectID, req.WalletAddress, req.Signature, req.Nonce, params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "project updated", project)
	}
}

type signedRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature"`
	Nonce         string `json:"nonce"`
}

// deleteProject hard-deletes a project. Owner-only, signature-verified.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req signedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode delete request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.projects.Delete(r.Context(), projectID, req.WalletAddress, req.Signature, req.Nonce); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "project deleted successfully", nil)
	}
}

type setStatusRequest struct {
	WalletAddress string `json:"walletAddress"`
	Status        string `json:"status"`
}

func (h projectHandler) setStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.projects.SetStatus(r.Context(), projectID, req.WalletAddress, models.ProjectStatus(req.Status))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "status updated", project)
	}
}

type assignRequest struct {
	WalletAddress    string `json:"walletAddress"`
	FreelancerWallet string `json:"freelancerWallet"`
}

func (h projectHandler) assignFreelancer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.projects.Assign(r.Context(), projectID, req.FreelancerWallet, req.WalletAddress)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "freelancer assigned", project)
	}
}

func (h projectHandler) unassignFreelancer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.projects.Unassign(r.Context(), projectID, req.WalletAddress)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, "freelancer unassigned", project)
	}
}

func projectIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "projectID")
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return id, nil
}
