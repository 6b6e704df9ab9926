package api

import (
	"errors"
	"net/http"

	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/model"
)

// Error kinds reported in the envelope's error field.
const (
	KindUnauthenticated      = "Unauthenticated"
	KindInvalidToken         = "InvalidToken"
	KindPlayerNotFound       = "PlayerNotFound"
	KindForbidden            = "Forbidden"
	KindQuestNotFound        = "QuestNotFound"
	KindQuestUnavailable     = "QuestUnavailable"
	KindInvalidQuestConfig   = "InvalidQuestConfig"
	KindInsufficientLevel    = "InsufficientLevel"
	KindAlreadyActive        = "AlreadyActive"
	KindAlreadyCompleted     = "AlreadyCompleted"
	KindNotActive            = "NotActive"
	KindMissingRequiredItems = "MissingRequiredItems"
	KindItemNotOwned         = "ItemNotOwned"
	KindItemNotFound         = "ItemNotFound"
	KindValidation           = "ValidationError"
	KindEmailTaken           = "EmailTaken"
	KindInvalidCredentials   = "InvalidCredentials"
	KindConflict             = "Conflict"
	KindPersistence          = "PersistenceError"
)

type errorMapping struct {
	target error
	status int
	kind   string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{model.ErrUnauthenticated, http.StatusUnauthorized, KindUnauthenticated},
	{model.ErrInvalidToken, http.StatusUnauthorized, KindInvalidToken},
	{model.ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials},
	{model.ErrPlayerNotFound, http.StatusNotFound, KindPlayerNotFound},
	{model.ErrForbidden, http.StatusForbidden, KindForbidden},
	{model.ErrQuestNotFound, http.StatusNotFound, KindQuestNotFound},
	{model.ErrQuestUnavailable, http.StatusBadRequest, KindQuestUnavailable},
	{model.ErrInvalidQuestConfig, http.StatusInternalServerError, KindInvalidQuestConfig},
	{model.ErrInsufficientLevel, http.StatusForbidden, KindInsufficientLevel},
	{model.ErrAlreadyActive, http.StatusBadRequest, KindAlreadyActive},
	{model.ErrAlreadyCompleted, http.StatusBadRequest, KindAlreadyCompleted},
	{model.ErrNotActive, http.StatusBadRequest, KindNotActive},
	{model.ErrMissingRequiredItems, http.StatusForbidden, KindMissingRequiredItems},
	{model.ErrItemNotOwned, http.StatusBadRequest, KindItemNotOwned},
	{model.ErrItemNotFound, http.StatusNotFound, KindItemNotFound},
	{model.ErrValidation, http.StatusBadRequest, KindValidation},
	{model.ErrEmailTaken, http.StatusConflict, KindEmailTaken},
	{model.ErrConflict, http.StatusConflict, KindConflict},
	{model.ErrPersistence, http.StatusInternalServerError, KindPersistence},
}

// classify maps an error to its status, kind and client-facing message.
// Unknown errors are reported as persistence failures.
func classify(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.kind, m.target.Error()
		}
	}
	return http.StatusInternalServerError, KindPersistence, model.ErrMsgPersistence
}

// responder writes error envelopes. Raw error text is exposed only in development.
type responder struct {
	Dev bool
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, kind, message := classify(err)
	rs.failWith(w, r, status, kind, message, err)
}

func (rs responder) failWith(w http.ResponseWriter, r *http.Request, status int, kind, message string, err error) {
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "kind", kind, "error", err)
	} else {
		log.Debug("request rejected", "kind", kind, "error", err)
	}

	env := envelope{Success: false, Message: message, Error: kind}
	if rs.Dev && err != nil {
		env.Detail = err.Error()
	}
	jsonResponse(w, status, env)
}

func (rs responder) invalid(w http.ResponseWriter, r *http.Request, err error) {
	env := envelope{
		Success: false,
		Message: model.ErrMsgValidation,
		Error:   KindValidation,
		Fields:  FormatValidationError(err),
	}
	if rs.Dev {
		env.Detail = err.Error()
	}
	logger.FromContext(r.Context()).Debug("request rejected", "kind", KindValidation, "error", err)
	jsonResponse(w, http.StatusBadRequest, env)
}
