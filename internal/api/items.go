package api

import (
	"net/http"
	"strings"

	"github.com/erazemk/algorithmia/internal/catalog"
	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/model"
)

// ItemsHandler serves the item catalog.
type ItemsHandler struct {
	responder
	Catalog *catalog.Catalog
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Type        string `json:"type" validate:"required,oneof=potion weapon armor quest misc"`
	Effect      struct {
		Health     int `json:"health" validate:"gte=0"`
		Experience int `json:"experience" validate:"gte=0"`
		Strength   int `json:"strength" validate:"gte=0"`
	} `json:"effect"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.Items(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, "Items retrieved", items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(&req); err != nil {
		h.invalid(w, r, err)
		return
	}

	item, err := h.Catalog.CreateItem(r.Context(), &model.Item{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Type:        model.ItemType(req.Type),
		Effect: model.ItemEffect{
			Health:     req.Effect.Health,
			Experience: req.Effect.Experience,
			Strength:   req.Effect.Strength,
		},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("item created", "item", item.ID, "name", item.Name, "by", GetIdentity(r.Context()).Claims.PlayerID)
	jsonSuccess(w, http.StatusCreated, "Item created", item)
}
