package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"conferencecfp/internal/delivery/http/helpers"
	"conferencecfp/internal/domain"
)

// SessionRequest is the request body for POST /sessions and PUT /sessions/{id}.
// Prerequisites must be present but may be empty. PUT replaces every field.
type SessionRequest struct {
	Title              string  `json:"title" validate:"required,max=200"`
	Summary            string  `json:"summary" validate:"required,max=2000"`
	Outline            string  `json:"outline" validate:"required"`
	LearningObjectives string  `json:"learning_objectives" validate:"required"`
	TargetAudience     string  `json:"target_audience" validate:"required"`
	Prerequisites      *string `json:"prerequisites" validate:"required"`
	SessionType        string  `json:"session_type" validate:"required"`
	SessionLevel       string  `json:"session_level" validate:"required"`
	DurationMinutes    int     `json:"duration_minutes" validate:"gt=0"`
}

// Validate implements Validator.
func (s SessionRequest) Validate() []string {
	return helpers.ValidateStruct(s)
}

func (s SessionRequest) draft() (domain.SessionDraft, error) {
	sessionType, err := domain.ParseSessionType(s.SessionType)
	if err != nil {
		return domain.SessionDraft{}, err
	}
	level, err := domain.ParseSessionLevel(s.SessionLevel)
	if err != nil {
		return domain.SessionDraft{}, err
	}
	return domain.SessionDraft{
		Abstract: domain.SessionAbstractParams{
			Title:              s.Title,
			Summary:            s.Summary,
			Outline:            s.Outline,
			LearningObjectives: s.LearningObjectives,
			TargetAudience:     s.TargetAudience,
			Prerequisites:      s.Prerequisites,
		},
		SessionType:     sessionType,
		SessionLevel:    level,
		DurationMinutes: s.DurationMinutes,
	}, nil
}

// SessionSuccessResponse is the success response envelope for single-session endpoints.
type SessionSuccessResponse struct {
	Data  *domain.SessionView `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListSessionsResponse is the data payload for session list endpoints. Pagination is set
// only when page or page_size was requested.
type ListSessionsResponse struct {
	Items      []*domain.SessionView   `json:"items"`
	Pagination *helpers.PaginationMeta `json:"pagination,omitempty"`
}

// ListSessionsSuccessResponse is the success response envelope for session list endpoints.
type ListSessionsSuccessResponse struct {
	Data  ListSessionsResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Submit a session
// @Description Creates a session in SUBMITTED status with no speakers.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body SessionRequest true "Session proposal"
// @Success 201 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	draft, err := req.draft()
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	view, err := c.Service.CreateSession(r.Context(), draft)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, view)
}

// ListSessions godoc
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [get]
func (c *SessionController) ListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListSessions(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// GetSession godoc
// @Summary Get a session by ID
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id} [get]
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	c.withID(w, r, c.Service.GetSession)
}

// UpdateSession godoc
// @Summary Update a session
// @Description Replaces the abstract, type, level and duration. Status and speakers are unchanged.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param session body SessionRequest true "Session proposal"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id} [put]
func (c *SessionController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	draft, err := req.draft()
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	view, err := c.Service.UpdateSession(r.Context(), id, draft)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// DeleteSession godoc
// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} controllers.DeleteResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id} [delete]
func (c *SessionController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteSession(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !deleted {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Deleted: true})
}

// AddSpeaker godoc
// @Summary Attach a speaker to a session
// @Description Attaching a speaker that is already on the session changes nothing.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id}/speakers/{speakerID} [post]
func (c *SessionController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	c.withSpeaker(w, r, c.Service.AddSpeakerToSession)
}

// RemoveSpeaker godoc
// @Summary Detach a speaker from a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (speaker not attached)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id}/speakers/{speakerID} [delete]
func (c *SessionController) RemoveSpeaker(w http.ResponseWriter, r *http.Request) {
	c.withSpeaker(w, r, c.Service.RemoveSpeakerFromSession)
}

// StartReview godoc
// @Summary Move a session to UNDER_REVIEW
// @Description Allowed only from SUBMITTED. Organizer token required.
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id}/review [post]
func (c *SessionController) StartReview(w http.ResponseWriter, r *http.Request) {
	c.withID(w, r, c.Service.StartReview)
}

// AcceptSession godoc
// @Summary Accept a session
// @Description Speakers are notified by email. Organizer token required.
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id}/accept [post]
func (c *SessionController) AcceptSession(w http.ResponseWriter, r *http.Request) {
	c.withID(w, r, c.Service.AcceptSession)
}

// RejectSession godoc
// @Summary Reject a session
// @Description Speakers are notified by email. Organizer token required.
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id}/reject [post]
func (c *SessionController) RejectSession(w http.ResponseWriter, r *http.Request) {
	c.withID(w, r, c.Service.RejectSession)
}

// WithdrawSession godoc
// @Summary Withdraw a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (illegal transition)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{id}/withdraw [post]
func (c *SessionController) WithdrawSession(w http.ResponseWriter, r *http.Request) {
	c.withID(w, r, c.Service.WithdrawSession)
}

// ListSessionsByStatus godoc
// @Summary List sessions by status
// @Tags sessions
// @Produce json
// @Param status path string true "SUBMITTED, UNDER_REVIEW, ACCEPTED, REJECTED or WITHDRAWN"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/status/{status} [get]
func (c *SessionController) ListSessionsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseSessionStatus(r.PathValue("status"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	list, err := c.Service.FindSessionsByStatus(r.Context(), status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// ListSessionsBySpeaker godoc
// @Summary List sessions of a speaker
// @Tags sessions
// @Produce json
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/speaker/{speakerID} [get]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID, ok := pathID(w, r, "speakerID")
	if !ok {
		return
	}
	list, err := c.Service.FindSessionsBySpeaker(r.Context(), speakerID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// ListSessionsByType godoc
// @Summary List sessions by type
// @Tags sessions
// @Produce json
// @Param type path string true "KEYNOTE, TALK, WORKSHOP, PANEL, LIGHTNING_TALK or BOF"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/type/{type} [get]
func (c *SessionController) ListSessionsByType(w http.ResponseWriter, r *http.Request) {
	sessionType, err := domain.ParseSessionType(r.PathValue("type"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	list, err := c.Service.FindSessionsByType(r.Context(), sessionType)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// ListSessionsByLevel godoc
// @Summary List sessions by level
// @Tags sessions
// @Produce json
// @Param level path string true "BEGINNER, INTERMEDIATE, ADVANCED or EXPERT"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/level/{level} [get]
func (c *SessionController) ListSessionsByLevel(w http.ResponseWriter, r *http.Request) {
	level, err := domain.ParseSessionLevel(r.PathValue("level"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	list, err := c.Service.FindSessionsByLevel(r.Context(), level)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

func (c *SessionController) withID(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*domain.SessionView, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := op(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

func (c *SessionController) withSpeaker(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (*domain.SessionView, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	speakerID, ok := pathID(w, r, "speakerID")
	if !ok {
		return
	}
	view, err := op(r.Context(), id, speakerID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

func (c *SessionController) writeList(w http.ResponseWriter, r *http.Request, list []*domain.SessionView) {
	items, meta := paginate(r, list)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListSessionsResponse{Items: items, Pagination: meta})
}
