package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"quill/internal/config"
	"quill/internal/errors"
	"quill/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/seed/demo", seedHandler.SeedDemo)

	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.Show)

	// Secured routes (require JWT authentication). Echo prefers static
	// segments, so /posts/create never collides with /posts/:id.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		TokenLookup:  "header:" + echo.HeaderAuthorization,
		ErrorHandler: unauthenticatedHandler,
	}))

	secured.GET("/posts/create", postHandler.CreateForm)
	secured.POST("/posts", postHandler.Store)
	secured.GET("/posts/:id/edit", postHandler.EditForm)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Destroy)
}

// unauthenticatedHandler distinguishes API clients from browser-style
// requests: JSON requests get a 401 body, everything else is redirected to
// the login page.
func unauthenticatedHandler(c echo.Context, _ error) error {
	if wantsJSON(c.Request()) {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthenticated",
			Code:  "UNAUTHENTICATED",
		})
	}
	return c.Redirect(http.StatusFound, "/login")
}

// wantsJSON reports whether the request negotiates a JSON response.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMEApplicationJSON) || strings.Contains(accept, "+json") {
		return true
	}
	return strings.Contains(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
