package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PivnoyFei/webtronics-social-networking/internal/http/middleware"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/response"
	"github.com/PivnoyFei/webtronics-social-networking/internal/service"
)

type UserHandler struct {
	users   *service.UserService
	storage service.StorageService
	logger  *slog.Logger
}

func NewUserHandler(users *service.UserService, storage service.StorageService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, storage: storage, logger: logger}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.users.Signup(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uintURLParam(r, "id")
	if !ok {
		response.Detail(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		response.Detail(w, http.StatusUnprocessableEntity, "current_password and new_password are required")
		return
	}
	if err := h.users.SetPassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Detail(w, http.StatusOK, "Changed")
}

// UploadAvatar stores a new avatar for the authenticated user and answers
// with the object key and a presigned URL.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.Detail(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.Detail(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer func() { _ = file.Close() }()

	objectKey, err := h.storage.UploadAvatar(r.Context(), user.ID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.storageFail(w, r, err)
		return
	}
	avatarURL, err := h.storage.AvatarURL(r.Context(), objectKey)
	if err != nil {
		h.storageFail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{
		"object_key": objectKey,
		"avatar_url": avatarURL,
	})
}

func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req struct {
		ObjectKey string `json:"object_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ObjectKey == "" {
		response.Detail(w, http.StatusBadRequest, "object_key is required")
		return
	}
	if err := h.storage.DeleteAvatar(r.Context(), req.ObjectKey); err != nil {
		h.storageFail(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logServiceError(r, h.logger, err)
	response.FromError(w, err)
}

func (h *UserHandler) storageFail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrFileTooBig), errors.Is(err, service.ErrInvalidFileType):
		response.Detail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStorageDisabled):
		response.Detail(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "storage operation failed", "error", err)
		response.Detail(w, http.StatusInternalServerError, "Internal server error")
	}
}
