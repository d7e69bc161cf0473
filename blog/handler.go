package blog

import (
	"errors"
	"net/http"

	"github.com/drblury/bloglist/responder"
)

// HandlerOption configures a Handler built by NewHandler.
type HandlerOption func(*Handler)

// Handler serves the /api/blogs resource on top of a Store.
type Handler struct {
	*responder.Responder
	store Store
}

// NewHandler constructs a Handler. Without WithResponder it uses a responder
// that classifies errors with ClassifyError.
func NewHandler(store Store, opts ...HandlerOption) *Handler {
	if store == nil {
		panic("blog: store cannot be nil")
	}
	h := &Handler{
		Responder: responder.NewResponder(responder.WithErrorClassifier(ClassifyError)),
		store:     store,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// WithResponder replaces the responder. It should classify errors with
// ClassifyError, otherwise validation failures surface as 500s.
func WithResponder(r *responder.Responder) HandlerOption {
	return func(h *Handler) {
		if r != nil {
			h.Responder = r
		}
	}
}

// RegisterRoutes mounts the blog endpoints on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/blogs", h.ListBlogs)
	mux.HandleFunc("POST /api/blogs", h.CreateBlog)
	mux.HandleFunc("GET /api/blogs/{id}", h.GetBlog)
	mux.HandleFunc("DELETE /api/blogs/{id}", h.DeleteBlog)
}

// ListBlogs returns every stored post.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List(r.Context())
	if err != nil {
		h.HandleErrors(w, r, err, "failed to list blogs")
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, posts)
}

// CreateBlog validates the body and stores a new post.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !h.ReadRequestBody(w, r, &req) {
		return
	}

	post, err := ValidateCreate(req)
	if err != nil {
		h.HandleErrors(w, r, err, "blog rejected")
		return
	}

	created, err := h.store.Create(r.Context(), post)
	if err != nil {
		h.HandleErrors(w, r, err, "failed to create blog")
		return
	}

	h.Logger().DebugContext(r.Context(), "blog created", "id", created.ID)
	h.RespondWithJSON(w, r, http.StatusCreated, created)
}

// GetBlog returns one post by identifier.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, post)
}

// DeleteBlog removes a post. Deleting an unknown identifier still succeeds,
// including one the store could never have issued.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), id); err != nil && !errors.Is(err, ErrInvalidID) {
		h.HandleErrors(w, r, err, "failed to delete blog")
		return
	}

	h.Logger().DebugContext(r.Context(), "blog deleted", "id", id)
	h.RespondNoContent(w, r)
}
