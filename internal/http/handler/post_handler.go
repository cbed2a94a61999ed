package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/PivnoyFei/webtronics-social-networking/internal/http/middleware"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/response"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
	"github.com/PivnoyFei/webtronics-social-networking/internal/service"
)

type PostHandler struct {
	posts     *service.PostService
	reactions *service.ReactionService
	logger    *slog.Logger
}

func NewPostHandler(posts *service.PostService, reactions *service.ReactionService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, reactions: reactions, logger: logger}
}

// postPage is the list envelope: total count plus links to the neighboring
// pages, derived from the request URL.
type postPage struct {
	Count    int64                       `json:"count"`
	Next     *string                     `json:"next"`
	Previous *string                     `json:"previous"`
	Results  []repository.PostWithCounts `json:"results"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", repository.DefaultLimit)
	author := queryInt(r, "author", 0)

	result, err := h.posts.List(r.Context(), page, limit, uint(author))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := postPage{Count: result.Total, Results: result.Items}
	if out.Results == nil {
		out.Results = []repository.PostWithCounts{}
	}
	if int64(result.Page)*int64(result.Limit) < result.Total {
		out.Next = pageURL(r, result.Page+1)
	}
	if result.Page > 1 {
		out.Previous = pageURL(r, result.Page-1)
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post, err := h.posts.Create(r.Context(), user.ID, req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	postID, ok := uintURLParam(r, "post_id")
	if !ok {
		response.Detail(w, http.StatusBadRequest, "invalid post id")
		return
	}
	detail, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, detail)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	postID, ok := uintURLParam(r, "post_id")
	if !ok {
		response.Detail(w, http.StatusBadRequest, "invalid post id")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post, err := h.posts.Update(r.Context(), postID, user.ID, req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	postID, ok := uintURLParam(r, "post_id")
	if !ok {
		response.Detail(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := h.posts.Delete(r.Context(), postID, user.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, true)
}

func (h *PostHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, false)
}

func (h *PostHandler) react(w http.ResponseWriter, r *http.Request, wantLike bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	postID, ok := uintURLParam(r, "post_id")
	if !ok {
		response.Detail(w, http.StatusBadRequest, "invalid post id")
		return
	}
	counts, err := h.reactions.React(r.Context(), postID, user.ID, wantLike)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, counts)
}

func (h *PostHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logServiceError(r, h.logger, err)
	response.FromError(w, err)
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
