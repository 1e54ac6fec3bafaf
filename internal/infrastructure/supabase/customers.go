package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/gateway"
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ gateway.CustomerGateway = (*CustomerGateway)(nil)

// CustomerGateway adaptador PostgREST de la tabla customers.
type CustomerGateway struct {
	c *Client
}

// NewCustomerGateway construye el adaptador.
func NewCustomerGateway(c *Client) *CustomerGateway {
	return &CustomerGateway{c: c}
}

// List colección completa, más nueva primero.
func (g *CustomerGateway) List(ctx context.Context) ([]entity.Customer, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	var out []entity.Customer
	err := g.c.doJSON(ctx, http.MethodGet, g.c.restURL("customers")+"?"+q.Encode(), nil, &out, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Insert crea la fila (id lo genera el gateway) y devuelve la representación
// autoritativa.
func (g *CustomerGateway) Insert(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	q := url.Values{}
	q.Set("select", "*")

	var out entity.Customer
	err := g.c.doJSON(ctx, http.MethodPost,
		g.c.restURL("customers")+"?"+q.Encode(), c, &out, singleObjectHeader())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update aplica el patch por id y devuelve la fila resultante. Un id
// inexistente produce GatewayError (cero filas con Accept de objeto único).
func (g *CustomerGateway) Update(ctx context.Context, id string, p entity.CustomerPatch) (*entity.Customer, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)

	var out entity.Customer
	err := g.c.doJSON(ctx, http.MethodPatch,
		g.c.restURL("customers")+"?"+q.Encode(), p, &out, singleObjectHeader())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina por id. Un id inexistente produce GatewayError.
func (g *CustomerGateway) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var discard json.RawMessage
	return g.c.doJSON(ctx, http.MethodDelete,
		g.c.restURL("customers")+"?"+q.Encode(), nil, &discard, singleObjectHeader())
}

// Count conteo exacto sin filas (cabecera Content-Range); lo usa la prueba
// de conectividad.
func (g *CustomerGateway) Count(ctx context.Context) (int64, error) {
	q := url.Values{}
	q.Set("select", "*")

	h := http.Header{}
	h.Set("Prefer", "count=exact")

	_, header, err := g.c.do(ctx, http.MethodHead, g.c.restURL("customers")+"?"+q.Encode(), nil, h)
	if err != nil {
		return 0, err
	}
	return parseContentRange(header.Get("Content-Range"))
}
