package handler

import (
	"net/http"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/validator"
)

type FavoriteHandler struct {
	favoriteUsecase usecase.FavoriteUsecase
	validator       *validator.CustomValidator
}

func NewFavoriteHandler(favoriteUsecase usecase.FavoriteUsecase, validator *validator.CustomValidator) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUsecase: favoriteUsecase,
		validator:       validator,
	}
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	favorites, total, err := h.favoriteUsecase.List(r.Context(), queryString(r, "type"), pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgFavoritesRetrieved, favorites, p, total)
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.FavoriteRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	favorite, err := h.favoriteUsecase.Add(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgFavoriteAdded, favorite)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.favoriteUsecase.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgFavoriteRemoved, nil)
}

// Check answers for ?type=medication|pharmacy&item_id=
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	itemID, ok := queryUUID(r, "item_id")
	if !ok || itemID == nil {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}

	status, err := h.favoriteUsecase.Check(r.Context(), queryString(r, "type"), *itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgFavoriteStatus, status)
}

func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.FavoriteRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	status, err := h.favoriteUsecase.Toggle(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	message := i18n.MsgFavoriteRemoved
	if status.IsFavorite {
		message = i18n.MsgFavoriteAdded
	}
	response.Success(w, http.StatusOK, message, status)
}

func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	removed, err := h.favoriteUsecase.Clear(r.Context(), queryString(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgFavoritesCleared, map[string]int64{"removed": removed})
}

func (h *FavoriteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.favoriteUsecase.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgFavoriteStats, stats)
}
