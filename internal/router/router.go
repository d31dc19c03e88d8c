package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"stockroom/internal/auth"
	"stockroom/internal/handler"
	"stockroom/internal/middleware"
)

// Register wires routes and middleware. Browsing endpoints stay public;
// everything that mutates state or reads caller identity sits behind the
// session gate.
func Register(
	e *echo.Echo,
	sessions auth.Sessions,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	itemHandler *handler.ItemHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Legacy user routes
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUser)

	// Public item browsing
	e.GET("/items", itemHandler.ListItems)
	e.GET("/items/:id", itemHandler.GetItem)
	e.GET("/items/user/:id", itemHandler.ItemsByUser)

	// Session-gated routes
	secured := e.Group("", middleware.RequireSession(sessions))
	secured.GET("/user", authHandler.CurrentUser)
	secured.POST("/change_password", authHandler.ChangePassword)
	secured.POST("/change_user_data", authHandler.ChangeUserData)
	secured.GET("/my_items", itemHandler.MyItems)
	secured.POST("/items", itemHandler.CreateItem)
	secured.PUT("/items/:id", itemHandler.UpdateItem)
	secured.DELETE("/items/:id", itemHandler.DeleteItem)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
