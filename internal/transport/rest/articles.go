package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/article"
	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
	"github.com/heartmarshall/newsroom-backend/pkg/ctxutil"
)

type articleService interface {
	Create(ctx context.Context, input article.CreateInput) (*domain.Article, error)
	Update(ctx context.Context, input article.UpdateInput) (*domain.Article, error)
	Validate(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ToggleArchive(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	Delete(ctx context.Context, id uuid.UUID) (*article.DeleteResult, error)
	GrantEdit(ctx context.Context, input article.GrantEditInput) (*domain.Article, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ListPublic(ctx context.Context, q article.PublicQuery) (*domain.ArticlePage, error)
	ListForActor(ctx context.Context, q article.ListQuery) (*domain.ArticlePage, error)
	ListPending(ctx context.Context, q article.ListQuery) (*domain.ArticlePage, error)
	ListArchived(ctx context.Context, q article.ListQuery) (*domain.ArticlePage, error)
}

type likeService interface {
	Toggle(ctx context.Context, articleID uuid.UUID, identity string) (*domain.LikeResult, error)
}

// ArticleHandler serves article and like endpoints.
type ArticleHandler struct {
	svc     articleService
	likes   likeService
	log     *slog.Logger
	present articlePresenter
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(svc articleService, likes likeService, logger *slog.Logger) *ArticleHandler {
	log := logger.With("handler", "article")
	return &ArticleHandler{svc: svc, likes: likes, log: log, present: articlePresenter{log: log}}
}

type createArticleRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	DomainID *uuid.UUID `json:"domain_id"`
}

type updateArticleRequest struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	DomainID *uuid.UUID `json:"domain_id"`
}

type grantEditRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type likeResponse struct {
	ArticleID  string `json:"article_id"`
	Action     string `json:"action"`
	LikesCount int    `json:"likes_count"`
}

type deleteArticleResponse struct {
	Deleted bool             `json:"deleted"`
	Hard    bool             `json:"hard"`
	Article *articleResponse `json:"article,omitempty"`
}

// ListPublic handles GET /api/articles?q=&domain_id=&limit=&offset=.
func (h *ArticleHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	domainID, ok := queryUUID(r, "domain_id")
	if !ok {
		respond.Validation(w, domain.NewValidationError("domain_id", "invalid id"))
		return
	}
	q := article.PublicQuery{
		Search:   r.URL.Query().Get("q"),
		DomainID: domainID,
		Limit:    queryInt(r, "limit", 0),
		Offset:   queryInt(r, "offset", 0),
	}

	page, err := h.svc.ListPublic(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	h.writePage(w, r, page, q.Limit, q.Offset)
}

// ListForActor handles GET /api/manage/articles.
func (h *ArticleHandler) ListForActor(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListForActor)
}

// ListPending handles GET /api/manage/articles/pending.
func (h *ArticleHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListPending)
}

// ListArchived handles GET /api/manage/articles/archived.
func (h *ArticleHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.ListArchived)
}

func (h *ArticleHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context, article.ListQuery) (*domain.ArticlePage, error),
) {
	q := article.ListQuery{
		Search: r.URL.Query().Get("q"),
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}
	page, err := fetch(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	h.writePage(w, r, page, q.Limit, q.Offset)
}

func (h *ArticleHandler) writePage(w http.ResponseWriter, r *http.Request, page *domain.ArticlePage, limit, offset int) {
	if limit <= 0 {
		limit = article.DefaultPageSize
	}
	respond.JSON(w, http.StatusOK, pageResponse[articleResponse]{
		Items:  h.present.many(r.Context(), page.Articles),
		Total:  page.Total,
		Limit:  min(limit, article.MaxPageSize),
		Offset: max(offset, 0),
	})
}

// Get handles GET /api/articles/{id}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.present.one(r.Context(), a))
}

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.svc.Create(r.Context(), article.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		DomainID: req.DomainID,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, h.present.one(r.Context(), a))
}

// Update handles PUT /api/articles/{id}.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.svc.Update(r.Context(), article.UpdateInput{
		ArticleID: id,
		Title:     req.Title,
		Content:   req.Content,
		DomainID:  req.DomainID,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.present.one(r.Context(), a))
}

// Delete handles DELETE /api/articles/{id}.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	body := deleteArticleResponse{Deleted: true, Hard: res.Hard}
	if res.Article != nil {
		a := h.present.one(r.Context(), res.Article)
		body.Article = &a
	}
	respond.JSON(w, http.StatusOK, body)
}

// Validate handles POST /api/articles/{id}/validate.
func (h *ArticleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Validate)
}

// ToggleArchive handles POST /api/articles/{id}/archive.
func (h *ArticleHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.ToggleArchive)
}

func (h *ArticleHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(context.Context, uuid.UUID) (*domain.Article, error),
) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	a, err := apply(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.present.one(r.Context(), a))
}

// GrantEdit handles POST /api/articles/{id}/editors.
func (h *ArticleHandler) GrantEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req grantEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.svc.GrantEdit(r.Context(), article.GrantEditInput{ArticleID: id, UserID: req.UserID})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.present.one(r.Context(), a))
}

// Like handles POST /api/articles/{id}/like. Anonymous; the caller is
// identified by its network address.
func (h *ArticleHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.likes.Toggle(r.Context(), id, ctxutil.ClientFromCtx(r.Context()).Identity)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, likeResponse{
		ArticleID:  res.ArticleID.String(),
		Action:     res.Action.String(),
		LikesCount: res.LikesCount,
	})
}
