package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"conferencecfp/internal/delivery/http/helpers"
	"conferencecfp/internal/domain"
)

// SpeakerRequest is the request body for POST /speakers and PUT /speakers/{id}.
// PUT replaces every field.
type SpeakerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,max=255"`
	Bio       string `json:"bio"`
	Company   string `json:"company"`
	Title     string `json:"title"`
	PhotoURL  string `json:"photo_url" validate:"omitempty,url"`
}

// Validate implements Validator.
func (s SpeakerRequest) Validate() []string {
	return helpers.ValidateStruct(s)
}

func (s SpeakerRequest) profile() domain.SpeakerProfile {
	return domain.SpeakerProfile{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Bio:       s.Bio,
		Company:   s.Company,
		Title:     s.Title,
		PhotoURL:  s.PhotoURL,
	}
}

// SpeakerSuccessResponse is the success response envelope for single-speaker endpoints.
type SpeakerSuccessResponse struct {
	Data  *domain.SpeakerView `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListSpeakersResponse is the data payload for speaker list endpoints. Pagination is set
// only when page or page_size was requested.
type ListSpeakersResponse struct {
	Items      []*domain.SpeakerView   `json:"items"`
	Pagination *helpers.PaginationMeta `json:"pagination,omitempty"`
}

// ListSpeakersSuccessResponse is the success response envelope for speaker list endpoints.
type ListSpeakersSuccessResponse struct {
	Data  ListSpeakersResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// DeleteResponse is the data payload for DELETE endpoints.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterSpeaker godoc
// @Summary Register a speaker
// @Description Creates a speaker profile. Email must be unique (case-insensitive).
// @Tags speakers
// @Accept json
// @Produce json
// @Param speaker body SpeakerRequest true "Speaker profile"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) RegisterSpeaker(w http.ResponseWriter, r *http.Request) {
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	view, err := c.Service.RegisterSpeaker(r.Context(), req.profile())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, view)
}

// ListSpeakers godoc
// @Summary List speakers
// @Description Returns all speakers ordered by last name, first name. Use page and page_size to paginate.
// @Tags speakers
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListSpeakersSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListSpeakers(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// SearchSpeakers godoc
// @Summary Search speakers by name
// @Description Case-insensitive substring match on first or last name.
// @Tags speakers
// @Produce json
// @Param name query string true "Name fragment"
// @Success 200 {object} controllers.ListSpeakersSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/search [get]
func (c *SpeakerController) SearchSpeakers(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing name")
		return
	}
	list, err := c.Service.SearchByName(r.Context(), name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// ListSpeakersByCompany godoc
// @Summary List speakers by company
// @Description Case-insensitive exact match on company.
// @Tags speakers
// @Produce json
// @Param company path string true "Company"
// @Success 200 {object} controllers.ListSpeakersSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/company/{company} [get]
func (c *SpeakerController) ListSpeakersByCompany(w http.ResponseWriter, r *http.Request) {
	company := r.PathValue("company")
	if company == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing company")
		return
	}
	list, err := c.Service.FindByCompany(r.Context(), company)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.writeList(w, r, list)
}

// GetSpeaker godoc
// @Summary Get a speaker by ID
// @Tags speakers
// @Produce json
// @Param id path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := c.Service.GetSpeaker(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateSpeaker godoc
// @Summary Update a speaker
// @Description Replaces the speaker profile. The new email must not belong to another speaker.
// @Tags speakers
// @Accept json
// @Produce json
// @Param id path string true "Speaker ID (UUID)"
// @Param speaker body SpeakerRequest true "Speaker profile"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [put]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	view, err := c.Service.UpdateSpeaker(r.Context(), id, req.profile())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// DeleteSpeaker godoc
// @Summary Delete a speaker
// @Description Detaches the speaker from every session, then deletes it.
// @Tags speakers
// @Produce json
// @Param id path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.DeleteResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [delete]
func (c *SpeakerController) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteSpeaker(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !deleted {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Deleted: true})
}

func (c *SpeakerController) writeList(w http.ResponseWriter, r *http.Request, list []*domain.SpeakerView) {
	items, meta := paginate(r, list)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListSpeakersResponse{Items: items, Pagination: meta})
}
