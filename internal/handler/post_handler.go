package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "quill/internal/errors"
	"quill/internal/service"
)

// PostHandler bundles the HTTP handlers for the posts resource.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates the posts handler layer.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// PostRequest carries the writable post fields for create and update.
type PostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// List godoc
// @Summary List published posts
// @Description Paginated listing of publicly visible posts, newest first.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} PaginatedPostsResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	posts, total, err := h.svc.List(c.Request().Context(), page)
	if err != nil {
		return postError(err)
	}

	path := c.Scheme() + "://" + c.Request().Host + c.Request().URL.Path
	return c.JSON(http.StatusOK, NewPaginatedPostsResponse(posts, page, service.PostsPerPage, total, path))
}

// CreateForm godoc
// @Summary Post creation form
// @Tags posts
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/create [get]
func (h *PostHandler) CreateForm(c echo.Context) error {
	return c.String(http.StatusOK, "posts.create")
}

// Store godoc
// @Summary Create a post
// @Description Creates a post owned by the authenticated user. Posts are published immediately.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body PostRequest true "Post payload"
// @Success 201 {object} PostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ValidationErrorResponse
// @Router /posts [post]
func (h *PostHandler) Store(c echo.Context) error {
	viewerID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.svc.Create(c.Request().Context(), viewerID, req.Title, req.Body)
	if err != nil {
		return postError(err)
	}
	return c.JSON(http.StatusCreated, NewPostResponse(post))
}

// Show godoc
// @Summary Get a post by id
// @Description Drafts and scheduled posts are reported as not found.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Show(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	post, svcErr := h.svc.Get(c.Request().Context(), id)
	if svcErr != nil {
		return postError(svcErr)
	}
	return c.JSON(http.StatusOK, NewPostResponse(post))
}

// EditForm godoc
// @Summary Post edit form
// @Tags posts
// @Produce plain
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/edit [get]
func (h *PostHandler) EditForm(c echo.Context) error {
	viewerID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.svc.AuthorizeModify(c.Request().Context(), viewerID, id); err != nil {
		return postError(err)
	}
	return c.String(http.StatusOK, "posts.edit")
}

// Update godoc
// @Summary Update a post
// @Description Rewrites title and body and recomputes the slug. Author only.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param post body PostRequest true "Post payload"
// @Success 200 {object} PostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ValidationErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	viewerID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	id, err := postID(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, svcErr := h.svc.Update(c.Request().Context(), viewerID, id, req.Title, req.Body)
	if svcErr != nil {
		return postError(svcErr)
	}
	return c.JSON(http.StatusOK, NewPostResponse(post))
}

// Destroy godoc
// @Summary Delete a post
// @Description Permanently removes the post. Author only.
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Destroy(c echo.Context) error {
	viewerID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), viewerID, id); err != nil {
		return postError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// postID parses the :id route parameter.
func postID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
			Error: apperrors.ErrPostNotFound.Error(),
			Code:  "POST_NOT_FOUND",
		})
	}
	return uint(id), nil
}

// currentUserID extracts the authenticated user id from the JWT middleware
// context. Absent or malformed claims are treated as unauthenticated.
func currentUserID(c echo.Context) (uint, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id < 1 {
		return 0, false
	}
	return uint(id), true
}

// postError translates service errors into HTTP responses. Validation
// failures get the field-scoped 422 payload; everything else goes through
// the domain error mapper.
func postError(err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.NewValidationErrorResponse(verr.Fields))
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
