package api

import (
	"net/http"
	"strings"

	"github.com/erazemk/algorithmia/internal/catalog"
	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/model"
	"github.com/erazemk/algorithmia/internal/progression"
)

// QuestsHandler serves the quest catalog.
type QuestsHandler struct {
	responder
	Engine  *progression.Engine
	Catalog *catalog.Catalog
}

type createQuestRequest struct {
	Title         string  `json:"title" validate:"required,max=100"`
	Description   string  `json:"description" validate:"required,max=1000"`
	MinLevel      int     `json:"min_level" validate:"gte=0"`
	RequiredItems []int64 `json:"required_items" validate:"dive,gt=0"`
	Rewards       struct {
		Experience *int    `json:"experience" validate:"omitnil,gte=0"`
		Gold       int     `json:"gold" validate:"gte=0"`
		Items      []int64 `json:"items" validate:"dive,gt=0"`
	} `json:"rewards"`
	IsActive *bool `json:"is_active"`
}

// Defaults for omitted quest fields.
const (
	defaultQuestMinLevel   = 1
	defaultQuestExperience = 100
)

// Available handles GET /api/quests/available.
func (h *QuestsHandler) Available(w http.ResponseWriter, r *http.Request) {
	quests, err := h.Engine.ListAvailableQuests(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "Available quests retrieved", quests)
}

// Create handles POST /api/quests.
func (h *QuestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, r, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(&req); err != nil {
		h.invalid(w, r, err)
		return
	}

	quest := &model.Quest{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.QuestStatusAvailable,
		Requirements: model.Requirements{
			MinLevel:      req.MinLevel,
			RequiredItems: req.RequiredItems,
		},
		Rewards: model.Rewards{
			Experience: defaultQuestExperience,
			Gold:       req.Rewards.Gold,
			Items:      req.Rewards.Items,
		},
		IsActive: true,
	}
	if quest.Requirements.MinLevel == 0 {
		quest.Requirements.MinLevel = defaultQuestMinLevel
	}
	if req.Rewards.Experience != nil {
		quest.Rewards.Experience = *req.Rewards.Experience
	}
	if req.IsActive != nil {
		quest.IsActive = *req.IsActive
	}

	created, err := h.Catalog.CreateQuest(r.Context(), quest)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("quest created", "quest", created.ID, "title", created.Title, "by", GetIdentity(r.Context()).Claims.PlayerID)
	jsonSuccess(w, http.StatusCreated, "Quest created", created)
}
