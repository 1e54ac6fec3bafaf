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
var _ gateway.OrderGateway = (*OrderGateway)(nil)

// orderSelect join tipado: toda la orden más la proyección del cliente.
const orderSelect = "*,customer:customers!customer_id(id,name,contact,address)"

// OrderGateway adaptador PostgREST de la tabla service_orders.
type OrderGateway struct {
	c *Client
}

// NewOrderGateway construye el adaptador.
func NewOrderGateway(c *Client) *OrderGateway {
	return &OrderGateway{c: c}
}

// List colección completa con el cliente embebido, más nueva primero.
func (g *OrderGateway) List(ctx context.Context) ([]entity.ServiceOrderWithCustomer, error) {
	q := url.Values{}
	q.Set("select", orderSelect)
	q.Set("order", "created_at.desc")

	var out []entity.ServiceOrderWithCustomer
	err := g.c.doJSON(ctx, http.MethodGet, g.c.restURL("service_orders")+"?"+q.Encode(), nil, &out, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Insert crea la fila (id sintetizado por el cliente) y devuelve la
// representación autoritativa con el join del cliente.
func (g *OrderGateway) Insert(ctx context.Context, o entity.ServiceOrder) (*entity.ServiceOrderWithCustomer, error) {
	q := url.Values{}
	q.Set("select", orderSelect)

	var out entity.ServiceOrderWithCustomer
	err := g.c.doJSON(ctx, http.MethodPost,
		g.c.restURL("service_orders")+"?"+q.Encode(), o, &out, singleObjectHeader())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update aplica el patch por id y devuelve la fila resultante con el join.
func (g *OrderGateway) Update(ctx context.Context, id string, p entity.OrderPatch) (*entity.ServiceOrderWithCustomer, error) {
	q := url.Values{}
	q.Set("select", orderSelect)
	q.Set("id", "eq."+id)

	var out entity.ServiceOrderWithCustomer
	err := g.c.doJSON(ctx, http.MethodPatch,
		g.c.restURL("service_orders")+"?"+q.Encode(), p, &out, singleObjectHeader())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina por id, sin cascada sobre payments. Un id inexistente
// produce GatewayError.
func (g *OrderGateway) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var discard json.RawMessage
	return g.c.doJSON(ctx, http.MethodDelete,
		g.c.restURL("service_orders")+"?"+q.Encode(), nil, &discard, singleObjectHeader())
}
