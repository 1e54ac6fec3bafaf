package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
)

// Verificar en tiempo de compilación que Client implementa AuthGateway.
var _ gateway.AuthGateway = (*Client)(nil)

// session tokens GoTrue vigentes en memoria. No se persiste: la sesión vive
// lo que vive el proceso, igual que el snapshot de los stores.
type session struct {
	accessToken  string
	refreshToken string
	principal    gateway.Principal
}

// tokenResponse respuesta del endpoint token de GoTrue.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// accessClaims claims del access token de GoTrue.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignIn inicia sesión con email y contraseña (grant password de GoTrue).
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost,
		c.authURL("token?grant_type=password"),
		map[string]string{"email": email, "password": password},
		&tr, nil)
	if err != nil {
		return err
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("supabase: GoTrue no devolvió access token")
	}

	principal := gateway.Principal{ID: tr.User.ID, Email: tr.User.Email}
	c.mu.Lock()
	c.sess = &session{
		accessToken:  tr.AccessToken,
		refreshToken: tr.RefreshToken,
		principal:    principal,
	}
	c.mu.Unlock()

	c.emit(gateway.AuthSignedIn, &principal)
	return nil
}

// SignOut cierra la sesión. El estado local se limpia aunque la llamada al
// backend falle; el error se devuelve igualmente.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.RLock()
	hasSession := c.sess != nil
	c.mu.RUnlock()

	var err error
	if hasSession {
		err = c.doJSON(ctx, http.MethodPost, c.authURL("logout"), struct{}{}, nil, nil)
	}

	c.mu.Lock()
	c.sess = nil
	c.mu.Unlock()
	c.emit(gateway.AuthSignedOut, nil)
	return err
}

// CurrentPrincipal devuelve el actor autenticado, o (nil, nil) si no hay
// sesión. Decodifica el access token localmente (verificando la firma si hay
// JWT secret configurado); si expiró intenta el grant refresh_token y, de
// fallar, la sesión se descarta.
func (c *Client) CurrentPrincipal(ctx context.Context) (*gateway.Principal, error) {
	c.mu.RLock()
	sess := c.sess
	c.mu.RUnlock()
	if sess == nil {
		return nil, nil
	}

	claims, err := c.decodeClaims(sess.accessToken)
	if err == nil {
		p := principalFromClaims(claims, sess.principal)
		return &p, nil
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		c.log.Warn().Err(err).Msg("access token inválido")
	}

	// Token vencido o ilegible: un refresh es la única salida.
	refreshed, rerr := c.refresh(ctx, sess.refreshToken)
	if rerr != nil {
		c.mu.Lock()
		c.sess = nil
		c.mu.Unlock()
		c.emit(gateway.AuthSignedOut, nil)
		return nil, nil
	}
	return refreshed, nil
}

// IsAdmin consulta el RPC current_user_is_admin del proyecto.
func (c *Client) IsAdmin(ctx context.Context) (bool, error) {
	var isAdmin bool
	err := c.doJSON(ctx, http.MethodPost,
		c.restURL("rpc/current_user_is_admin"), struct{}{}, &isAdmin, nil)
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

// OnAuthChange registra un listener de cambios de sesión y devuelve la
// función que lo da de baja.
func (c *Client) OnAuthChange(fn func(gateway.AuthEvent, *gateway.Principal)) (cancel func()) {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// emit notifica a los listeners fuera del lock.
func (c *Client) emit(ev gateway.AuthEvent, p *gateway.Principal) {
	c.mu.RLock()
	fns := make([]func(gateway.AuthEvent, *gateway.Principal), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(ev, p)
	}
}

// refresh ejecuta el grant refresh_token y reemplaza la sesión.
func (c *Client) refresh(ctx context.Context, refreshToken string) (*gateway.Principal, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("supabase: sesión sin refresh token")
	}

	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost,
		c.authURL("token?grant_type=refresh_token"),
		map[string]string{"refresh_token": refreshToken},
		&tr, nil)
	if err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("supabase: refresh sin access token")
	}

	principal := gateway.Principal{ID: tr.User.ID, Email: tr.User.Email}
	c.mu.Lock()
	c.sess = &session{
		accessToken:  tr.AccessToken,
		refreshToken: tr.RefreshToken,
		principal:    principal,
	}
	c.mu.Unlock()

	c.emit(gateway.AuthTokenRefreshed, &principal)
	return &principal, nil
}

// decodeClaims interpreta el access token. Con JWT secret configurado la
// firma se verifica (HS256, como firma GoTrue); sin secret se leen los claims
// sin verificar y se comprueba la expiración a mano.
func (c *Client) decodeClaims(token string) (*accessClaims, error) {
	claims := &accessClaims{}

	if c.jwtSecret != "" {
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
			}
			return []byte(c.jwtSecret), nil
		})
		if err != nil {
			return nil, err
		}
		return claims, nil
	}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}
	return claims, nil
}

// principalFromClaims prefiere los claims del token; cae en los datos de la
// sesión si el token no trae subject (tokens antiguos).
func principalFromClaims(claims *accessClaims, fallback gateway.Principal) gateway.Principal {
	p := gateway.Principal{ID: claims.Subject, Email: claims.Email}
	if p.ID == "" {
		p.ID = fallback.ID
	}
	if p.Email == "" {
		p.Email = fallback.Email
	}
	return p
}
