package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	profileHandler    profileHandler
	skillHandler      skillHandler
	projectHandler    projectHandler
	submissionHandler submissionHandler
	balanceHandler    balanceHandler
	webhookHandler    webhookHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	IsSuccess bool   `json:"isSuccess" example:"false"`
	Message   string `json:"message" example:"project not found"`
	Field     string `json:"field,omitempty" example:"name"`
	Details   string `json:"details,omitempty" example:"Additional error details"`
}
