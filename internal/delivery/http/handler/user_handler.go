package handler

import (
	"net/http"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/upload"
	"dawaksahl-api/pkg/validator"
)

type UserHandler struct {
	userUsecase  usecase.UserUsecase
	validator    *validator.CustomValidator
	avatarPolicy upload.Policy
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator, uploads config.UploadConfig) *UserHandler {
	return &UserHandler{
		userUsecase:  userUsecase,
		validator:    validator,
		avatarPolicy: upload.AvatarPolicy(uploads.MaxAvatarSize),
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.GetProfile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgUserRetrieved, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgProfileUpdated, user)
}

// UploadAvatar expects the image in the multipart field "avatar"
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(w, r, h.avatarPolicy); err != nil {
		writeError(w, err)
		return
	}
	file, err := upload.ReadFile(r, "avatar", h.avatarPolicy)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userUsecase.UploadAvatar(r.Context(), file)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAvatarUploaded, user)
}

func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.userUsecase.ListAddresses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAddressesRetrieved, addresses)
}

func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	address, err := h.userUsecase.AddAddress(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgAddressAdded, address)
}

func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AddressRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	address, err := h.userUsecase.UpdateAddress(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAddressUpdated, address)
}

func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userUsecase.DeleteAddress(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAddressDeleted, nil)
}

func (h *UserHandler) GetMedicalInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.userUsecase.GetMedicalInfo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMedicalInfoRetrieved, info)
}

func (h *UserHandler) UpdateMedicalInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.MedicalInfoRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	info, err := h.userUsecase.UpdateMedicalInfo(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMedicalInfoUpdated, info)
}

// UpdateUserStatus is admin only; deactivating revokes the user's tokens
func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.UpdateUserStatus(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgUserStatusUpdated, user)
}
