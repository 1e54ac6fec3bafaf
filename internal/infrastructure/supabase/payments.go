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
var _ gateway.PaymentGateway = (*PaymentGateway)(nil)

// paymentSelect join tipado de dos niveles: el pago, su orden y el cliente de
// esa orden.
const paymentSelect = "*,order:service_orders!order_id(id,clothing_type,quantity,total,customer:customers!customer_id(id,name,contact))"

// PaymentGateway adaptador PostgREST de la tabla payments.
type PaymentGateway struct {
	c *Client
}

// NewPaymentGateway construye el adaptador.
func NewPaymentGateway(c *Client) *PaymentGateway {
	return &PaymentGateway{c: c}
}

// List colección completa con orden y cliente embebidos, más nueva primero.
func (g *PaymentGateway) List(ctx context.Context) ([]entity.PaymentWithOrder, error) {
	q := url.Values{}
	q.Set("select", paymentSelect)
	q.Set("order", "created_at.desc")

	var out []entity.PaymentWithOrder
	err := g.c.doJSON(ctx, http.MethodGet, g.c.restURL("payments")+"?"+q.Encode(), nil, &out, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Insert crea la fila (id sintetizado por el cliente) y devuelve la
// representación autoritativa con los joins.
func (g *PaymentGateway) Insert(ctx context.Context, p entity.Payment) (*entity.PaymentWithOrder, error) {
	q := url.Values{}
	q.Set("select", paymentSelect)

	var out entity.PaymentWithOrder
	err := g.c.doJSON(ctx, http.MethodPost,
		g.c.restURL("payments")+"?"+q.Encode(), p, &out, singleObjectHeader())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update aplica el patch por id y devuelve la fila resultante con los joins.
func (g *PaymentGateway) Update(ctx context.Context, id string, p entity.PaymentPatch) (*entity.PaymentWithOrder, error) {
	q := url.Values{}
	q.Set("select", paymentSelect)
	q.Set("id", "eq."+id)

	var out entity.PaymentWithOrder
	err := g.c.doJSON(ctx, http.MethodPatch,
		g.c.restURL("payments")+"?"+q.Encode(), p, &out, singleObjectHeader())
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina por id. Un id inexistente produce GatewayError.
func (g *PaymentGateway) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	var discard json.RawMessage
	return g.c.doJSON(ctx, http.MethodDelete,
		g.c.restURL("payments")+"?"+q.Encode(), nil, &discard, singleObjectHeader())
}
