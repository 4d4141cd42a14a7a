package salesboard

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to salesboard errors.
const (
	CodeMissingTarget   = "MISSING_TARGET"
	CodeMissingAction   = "MISSING_ACTION"
	CodeUnknownAction   = "UNKNOWN_ACTION"
	CodeInvalidSort     = "INVALID_SORT"
	CodeTargetNotFound  = "TARGET_NOT_FOUND"
	CodeRepositoryError = "REPOSITORY_ERROR"
	CodeHookError       = "HOOK_ERROR"
)

func errMissingTarget(kind string) *goerrors.Error {
	return goerrors.New("salesboard: "+kind+" id is required", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(CodeMissingTarget)
}

func errMissingAction() *goerrors.Error {
	return goerrors.New("salesboard: quick action is required", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(CodeMissingAction)
}

func errUnknownAction(repID, action string) *goerrors.Error {
	return goerrors.New("salesboard: action "+action+" is not available for rep "+repID, goerrors.CategoryValidation).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(CodeUnknownAction).
		WithMetadata(map[string]any{"rep_id": repID, "action": action})
}

func errInvalidSort(field, value string) *goerrors.Error {
	return goerrors.New("salesboard: unsupported sort "+field+" "+value, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(CodeInvalidSort).
		WithMetadata(map[string]any{field: value})
}

func errNotFound(kind, id string) *goerrors.Error {
	return goerrors.New("salesboard: "+kind+" "+id+" not found", goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(CodeTargetNotFound).
		WithMetadata(map[string]any{"kind": kind, "id": id})
}

func wrapRepositoryError(err error, section string) error {
	if err == nil {
		return nil
	}
	var existing *goerrors.Error
	if goerrors.As(err, &existing) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "salesboard: fetch "+section).
		WithCode(http.StatusBadGateway).
		WithTextCode(CodeRepositoryError)
}

func wrapHookError(err error, kind ActionKind) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "salesboard: action hook failed for "+string(kind)).
		WithCode(http.StatusBadGateway).
		WithTextCode(CodeHookError)
}

// HTTPStatus maps an error to a response status.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *goerrors.Error
	if !goerrors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Code != 0 {
		return e.Code
	}
	switch e.Category {
	case goerrors.CategoryBadInput:
		return http.StatusBadRequest
	case goerrors.CategoryValidation:
		return http.StatusUnprocessableEntity
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse builds the JSON error envelope for err.
func ErrorResponse(err error) goerrors.ErrorResponse {
	var e *goerrors.Error
	switch {
	case err == nil:
		e = goerrors.New("salesboard: unknown error", goerrors.CategoryInternal)
	case !goerrors.As(err, &e):
		e = goerrors.Wrap(err, goerrors.CategoryInternal, "salesboard: unexpected error").
			WithCode(http.StatusInternalServerError)
	}
	return e.ToErrorResponse(false, nil)
}
