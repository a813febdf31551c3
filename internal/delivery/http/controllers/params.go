package controllers

import (
	"net/http"

	"conferencecfp/internal/delivery/http/helpers"
	"conferencecfp/internal/domain"

	"github.com/google/uuid"
)

// pathID reads a UUID path value. On a missing or malformed value it writes 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if uuid.Validate(id) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id, true
}

// paginate slices items when the request asks for a page. Without page or
// page_size every item is returned and the meta is nil.
func paginate[T any](r *http.Request, items []T) ([]T, *helpers.PaginationMeta) {
	if items == nil {
		items = []T{}
	}
	params, requested := helpers.ParsePagination(r)
	if !requested {
		return items, nil
	}
	meta := helpers.NewPaginationMeta(params, len(items))
	return domain.Paginate(items, params), &meta
}
