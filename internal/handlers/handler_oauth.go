package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portssvc "github.com/luxe-fragrances/storefront-backend/internal/core/ports/services"
	"github.com/luxe-fragrances/storefront-backend/internal/dto"
	"github.com/luxe-fragrances/storefront-backend/internal/middleware"
)

// OAuthHandler handles provider sign-in. The browser completes the consent
// redirect against the provider; this handler only exchanges the resulting
// authorization code and resolves it to a local account.
type OAuthHandler struct {
	oauthService portssvc.OAuthSvcFacade
	userService  portssvc.UserSvcFacade
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(oauthService portssvc.OAuthSvcFacade, userService portssvc.UserSvcFacade) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		userService:  userService,
	}
}

// ExchangeCodeRequest is the JSON body for the exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginURLResponse carries the provider consent URL and the CSRF state the
// frontend must round-trip.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

func parseProvider(c *gin.Context) (domain.AuthProvider, bool) {
	provider := domain.AuthProvider(c.Param("provider"))
	if !provider.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported OAuth provider"})
		return "", false
	}
	return provider, true
}

// LoginURL godoc
// @Summary Get the provider consent URL
// @Tags oauth
// @Produce json
// @Param provider path string true "OAuth provider (google or facebook)"
// @Success 200 {object} LoginURLResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/oauth/{provider}/login-url [get]
func (h *OAuthHandler) LoginURL(c *gin.Context) {
	provider, ok := parseProvider(c)
	if !ok {
		return
	}

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.oauthService.GetLoginURL(c.Request.Context(), provider, state)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginURLResponse{URL: url, State: state})
}

// ExchangeCode godoc
// @Summary Exchange an authorization code for a bearer token
// @Description Exchanges the provider authorization code, resolves the profile to a local account (linking by email when one exists), and returns a bearer token.
// @Tags oauth
// @Accept json
// @Produce json
// @Param provider path string true "OAuth provider (google or facebook)"
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/oauth/{provider}/exchange-code [post]
func (h *OAuthHandler) ExchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	provider, ok := parseProvider(c)
	if !ok {
		return
	}

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	profile, err := h.oauthService.ExchangeCode(ctx, provider, req.Code)
	if err != nil {
		logger.Warn("OAuth code exchange failed",
			slog.String("provider", string(provider)), slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	user, token, err := h.userService.OAuthSignIn(ctx, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("User signed in via OAuth",
		slog.String("provider", string(provider)), slog.String("user_id", user.UserID))

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}
