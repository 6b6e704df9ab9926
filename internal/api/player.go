package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/progression"
)

// PlayerHandler exposes the authenticated player's transitions.
type PlayerHandler struct {
	responder
	Engine *progression.Engine
}

// Profile handles GET /api/player/profile.
func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	view, err := h.Engine.Profile(r.Context(), identity.Claims.PlayerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "Profile loaded", view)
}

// AcceptQuest handles POST /api/player/accept-quest/{questId}.
func (h *PlayerHandler) AcceptQuest(w http.ResponseWriter, r *http.Request) {
	questID, ok := h.pathID(w, r, "questId")
	if !ok {
		return
	}

	result, err := h.Engine.AcceptQuest(r.Context(), GetIdentity(r.Context()).Claims.PlayerID, questID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "Quest accepted: "+result.Quest.Title, result)
}

// CompleteQuest handles POST /api/player/complete-quest/{questId}.
func (h *PlayerHandler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	questID, ok := h.pathID(w, r, "questId")
	if !ok {
		return
	}

	result, err := h.Engine.CompleteQuest(r.Context(), GetIdentity(r.Context()).Claims.PlayerID, questID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "Quest completed: "+result.Quest.Title, result)
}

// UseItem handles POST /api/player/use-item/{itemId}.
func (h *PlayerHandler) UseItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId")
	if !ok {
		return
	}

	result, err := h.Engine.UseItem(r.Context(), GetIdentity(r.Context()).Claims.PlayerID, itemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "Used "+result.Item.Name, result)
}

// AbandonQuest handles POST /api/player/abandon-quest/{questId}.
func (h *PlayerHandler) AbandonQuest(w http.ResponseWriter, r *http.Request) {
	questID, ok := h.pathID(w, r, "questId")
	if !ok {
		return
	}

	result, err := h.Engine.AbandonQuest(r.Context(), GetIdentity(r.Context()).Claims.PlayerID, questID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	message := "Quest abandoned"
	if !result.Abandoned {
		message = "Quest was not in progress"
	}
	jsonSuccess(w, http.StatusOK, message, result)
}

// pathID parses a positive integer path value, writing a validation error otherwise.
func (h *PlayerHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.fail(w, r, fmt.Errorf("%w: invalid %s %q", model.ErrValidation, name, raw))
		return 0, false
	}
	return id, true
}
