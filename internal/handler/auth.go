package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/config"
	"github.com/edwinroj/biomedical-inventory/internal/middleware"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
	"github.com/edwinroj/biomedical-inventory/internal/utils"
)

// AuthHandler bundles dependencies for the authentication endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UsuarioRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UsuarioRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rolPart struct {
	ID     uint64 `json:"id_rol"`
	Nombre string `json:"nombre_rol"`
}

type usuarioPart struct {
	ID             uint64   `json:"id_usuario"`
	NombreUsuario  string   `json:"nombre_usuario"`
	NombreCompleto string   `json:"nombre_completo"`
	Rol            *rolPart `json:"rol"`
}

type loginResp struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Usuario     usuarioPart `json:"usuario"`
}

// Login verifies username and password and issues an access token. Unknown
// user and wrong password both answer the same generic 401 so the endpoint
// cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "usuario y contrasena son requeridos"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, rolNombre, err := h.Users.GetByUsernameWithRole(ctx, req.Username)
	if err != nil || !utils.VerifyPassword(u.ContrasenaHash, req.Password) {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "usuario o contrasena incorrectos"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.NombreUsuario, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "no se pudo emitir el token"})
	}

	resp := loginResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		Usuario: usuarioPart{
			ID:             u.ID,
			NombreUsuario:  u.NombreUsuario,
			NombreCompleto: u.NombreCompleto,
		},
	}
	if rolNombre != "" {
		resp.Usuario.Rol = &rolPart{ID: u.IDRol, Nombre: rolNombre}
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the public profile of the authenticated caller. Protected by
// JWTAuth; the identity comes from the context.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "no se pudo validar las credenciales"})
	}
	resp := usuarioPart{ID: u.ID, NombreUsuario: u.NombreUsuario, NombreCompleto: u.NombreCompleto}
	if rol, ok := c.Get(middleware.CtxRole).(string); ok && rol != "" {
		resp.Rol = &rolPart{ID: u.IDRol, Nombre: rol}
	}
	return c.JSON(http.StatusOK, resp)
}
