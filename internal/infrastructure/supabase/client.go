// Package supabase implementa los puertos del gateway remoto contra un
// proyecto Supabase: PostgREST para el CRUD tabular y GoTrue para la sesión.
// Usa net/http de la librería estándar; no requiere SDK.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Lavanderia-sync/internal/domain"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
	"github.com/jhoicas/Lavanderia-sync/pkg/logger"
)

// Config datos de acceso al proyecto.
type Config struct {
	URL       string // ej. https://abcdefg.supabase.co
	AnonKey   string
	JWTSecret string // opcional: habilita verificar la firma del access token
	// HTTPClient permite inyectar un cliente propio (pruebas). nil = uno con
	// timeout de 25 s, igual que los demás adaptadores REST de la casa.
	HTTPClient *http.Client
}

// Client cliente HTTP compartido por los adaptadores de auth y de tablas.
// Mantiene la sesión GoTrue en memoria y el registro de listeners de auth.
type Client struct {
	baseURL    string
	anonKey    string
	jwtSecret  string
	httpClient *http.Client
	log        *logger.Logger

	mu           sync.RWMutex
	sess         *session
	listeners    map[int]func(gateway.AuthEvent, *gateway.Principal)
	nextListener int
}

// New construye el cliente.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase: URL vacía")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase: anon key vacía")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 25 * time.Second}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		jwtSecret:  cfg.JWTSecret,
		httpClient: hc,
		log:        log,
		listeners:  make(map[int]func(gateway.AuthEvent, *gateway.Principal)),
	}, nil
}

func (c *Client) restURL(path string) string {
	return c.baseURL + "/rest/v1/" + path
}

func (c *Client) authURL(path string) string {
	return c.baseURL + "/auth/v1/" + path
}

// bearerToken access token de la sesión activa, o la anon key si no hay
// sesión (PostgREST decide el rol según el token).
func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sess != nil {
		return c.sess.accessToken
	}
	return c.anonKey
}

// do ejecuta una petición JSON y devuelve el cuerpo y las cabeceras de la
// respuesta. Los errores HTTP se mapean a *domain.GatewayError con el mensaje
// del servicio pasado tal cual.
func (c *Client) do(ctx context.Context, method, rawURL string, body any, header http.Header) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("supabase: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("supabase: crear HTTP request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("supabase: timeout o cancelación: %w", ctx.Err())
		}
		return nil, nil, fmt.Errorf("supabase: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("supabase: leer respuesta: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("url", rawURL).
			Msg("respuesta de error del gateway")
		return nil, resp.Header, newGatewayError(resp.StatusCode, raw)
	}

	return raw, resp.Header, nil
}

// doJSON como do, decodificando el cuerpo en out cuando out no es nil.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, body, out any, header http.Header) error {
	raw, _, err := c.do(ctx, method, rawURL, body, header)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("supabase: deserializar respuesta: %w", err)
	}
	return nil
}

// errorBody forma de los cuerpos de error de PostgREST ({message, code,
// details, hint}) y de GoTrue ({msg} o {error_description}).
type errorBody struct {
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	ErrorDescription string          `json:"error_description"`
	Code             json.RawMessage `json:"code"`
}

func newGatewayError(status int, raw []byte) *domain.GatewayError {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	msg := eb.Message
	if msg == "" {
		msg = eb.Msg
	}
	if msg == "" {
		msg = eb.ErrorDescription
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &domain.GatewayError{
		Status:  status,
		Code:    strings.Trim(string(eb.Code), `"`),
		Message: msg,
	}
}

// singleObjectHeader cabeceras para operaciones que devuelven exactamente una
// fila. Con cero filas PostgREST responde error, lo que convierte un update o
// delete sobre un id inexistente en un GatewayError visible.
func singleObjectHeader() http.Header {
	h := http.Header{}
	h.Set("Prefer", "return=representation")
	h.Set("Accept", "application/vnd.pgrst.object+json")
	return h
}

// parseContentRange extrae el total de una cabecera "0-24/3021" o "*/0".
func parseContentRange(v string) (int64, error) {
	idx := strings.LastIndex(v, "/")
	if idx < 0 || idx == len(v)-1 {
		return 0, fmt.Errorf("supabase: Content-Range inesperado %q", v)
	}
	total := v[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("supabase: Content-Range sin total %q", v)
	}
	return strconv.ParseInt(total, 10, 64)
}
