package handlers

import (
	"net/http"
	"path/filepath"

	"staymart/internal/common"
	"staymart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles registration, sessions, profile updates and the
// owner directory.
type UserHandlers struct {
	users  services.UserService
	tokens *services.TokenService
	media  services.MediaService
}

func NewUserHandlers(users services.UserService, tokens *services.TokenService, media services.MediaService) *UserHandlers {
	return &UserHandlers{users: users, tokens: tokens, media: media}
}

// setSession attaches the session cookie and writes the auth payload.
func (h *UserHandlers) setSession(c echo.Context, status int, result *services.AuthResult) error {
	c.SetCookie(h.tokens.SessionCookie(result.Token, result.Expires))
	return c.JSON(status, result)
}

// Register creates an account and opens a session.
func (h *UserHandlers) Register(c echo.Context) error {
	var req services.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	result, err := h.users.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}
	return h.setSession(c, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	result, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return h.setSession(c, http.StatusOK, result)
}

// GoogleLogin upserts an account by email and opens a session.
func (h *UserHandlers) GoogleLogin(c echo.Context) error {
	var req services.GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	result, err := h.users.GoogleLogin(ctx, &req)
	if err != nil {
		return httpError(err)
	}
	return h.setSession(c, http.StatusOK, result)
}

// UploadPicture streams the posted image into object storage and returns
// its public URL.
func (h *UserHandlers) UploadPicture(c echo.Context) error {
	file, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Picture file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer src.Close()

	objectName := uuid.NewString() + filepath.Ext(file.Filename)
	url, err := h.media.UploadPicture(c.Request().Context(), objectName, src, file.Size,
		file.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload picture")
	}
	return c.JSON(http.StatusOK, url)
}

// UpdateUser edits the caller's profile (admins may edit anyone) and
// re-issues the session.
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	callerID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req services.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	result, err := h.users.UpdateDetails(ctx, callerID, &req)
	if err != nil {
		return httpError(err)
	}
	return h.setSession(c, http.StatusOK, result)
}

// Logout replaces the session cookie with an expired one. Tokens are
// stateless and stay valid until natural expiry; nothing is revoked
// server-side.
func (h *UserHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.tokens.ExpiredSessionCookie())
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// Owners lists all property owners, passwords excluded.
func (h *UserHandlers) Owners(c echo.Context) error {
	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	owners, err := h.users.AllOwners(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"owners": owners})
}

func (h *UserHandlers) setOwnerVerification(c echo.Context, verified bool) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Owner ID is required")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	owner, err := h.users.SetOwnerVerification(ctx, id, verified)
	if err != nil {
		return httpError(err)
	}

	message := "Property owner verified successfully"
	if !verified {
		message = "Property owner unverified successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "owner": owner})
}

// VerifyOwner marks an owner account as admin-verified.
func (h *UserHandlers) VerifyOwner(c echo.Context) error {
	return h.setOwnerVerification(c, true)
}

// UnverifyOwner clears the admin verification flag.
func (h *UserHandlers) UnverifyOwner(c echo.Context) error {
	return h.setOwnerVerification(c, false)
}
