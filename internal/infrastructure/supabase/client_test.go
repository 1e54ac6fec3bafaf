package supabase_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Lavanderia-sync/internal/domain"
	"github.com/jhoicas/Lavanderia-sync/internal/domain/entity"
	"github.com/jhoicas/Lavanderia-sync/internal/infrastructure/supabase"
)

const anonKey = "anon-key-de-prueba"

// newTestClient levanta un servidor HTTP de prueba y un cliente apuntándole.
func newTestClient(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := supabase.New(supabase.Config{
		URL:        srv.URL,
		AnonKey:    anonKey,
		HTTPClient: srv.Client(),
	}, nil)
	require.NoError(t, err)
	return c
}

func TestNew_ConfiguracionIncompleta(t *testing.T) {
	_, err := supabase.New(supabase.Config{AnonKey: anonKey}, nil)
	assert.Error(t, err, "sin URL no hay cliente")

	_, err = supabase.New(supabase.Config{URL: "https://x.supabase.co"}, nil)
	assert.Error(t, err, "sin anon key no hay cliente")
}

func TestCustomerList_ConsultaYCabeceras(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/customers", r.URL.Path)
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"), "más nuevo primero")
		assert.Equal(t, "*", r.URL.Query().Get("select"))

		// Sin sesión, ambas credenciales son la anon key.
		assert.Equal(t, anonKey, r.Header.Get("apikey"))
		assert.Equal(t, "Bearer "+anonKey, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":"c-2","name":"Bento","contact":"+258842222222","address":"Matola","created_at":"2025-02-01T10:00:00Z"},
			{"id":"c-1","name":"Ana","contact":"+258841111111","address":"Maputo","created_at":"2025-01-01T10:00:00Z"}
		]`)
	})

	rows, err := supabase.NewCustomerGateway(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c-2", rows[0].ID)
	assert.Equal(t, "Bento", rows[0].Name)
	assert.False(t, rows[0].CreatedAt.IsZero())
}

func TestCustomerInsert_PideLaRepresentacion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/customers", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var fila entity.Customer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fila))
		assert.Equal(t, "Ana Sitoe", fila.Name)
		assert.Equal(t, "user-1", fila.OwnerID)

		fila.ID = "c-100"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fila)
	})

	out, err := supabase.NewCustomerGateway(c).Insert(context.Background(), entity.Customer{
		Name:    "Ana Sitoe",
		Contact: "+258841234567",
		Address: "Av. de Angola 88",
		OwnerID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "c-100", out.ID, "el id viene del gateway")
}

func TestOrderUpdate_FiltraPorIdYEnviaSoloElPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/service_orders", r.URL.Path)
		assert.Equal(t, "eq.ORD-1", r.URL.Query().Get("id"))

		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"ready"}`, string(raw),
			"los campos ausentes del patch no viajan")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"ORD-1","customer_id":"c-1","service_type":"dry-clean",
			"clothing_type":"Vestidos","quantity":2,"unit_price":300,"total":600,
			"expected_delivery":"2025-03-01","status":"ready",
			"customer":{"id":"c-1","name":"Ana","contact":"+258841111111","address":"Maputo"}}`)
	})

	estado := entity.StatusReady
	out, err := supabase.NewOrderGateway(c).Update(context.Background(), "ORD-1",
		entity.OrderPatch{Status: &estado})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, out.Status)
	assert.Equal(t, "2025-03-01", out.ExpectedDelivery.String(), "columna date sin hora")
	assert.True(t, out.Total.Equal(decimal.NewFromInt(600)), "total %s", out.Total)
	assert.Equal(t, "Ana", out.Customer.Name, "el join viene tipado")
}

func TestPaymentList_DecodificaElJoinDeDosNiveles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/payments", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("select"), "order:service_orders!order_id")

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"PAY-1","order_id":"ORD-1","amount":451.5,
			"method":"mobile-money","payment_date":"2025-10-02",
			"order":{"id":"ORD-1","clothing_type":"Camisas","quantity":3,"total":451.5,
				"customer":{"id":"c-1","name":"João","contact":"+258841234567"}}}]`)
	})

	rows, err := supabase.NewPaymentGateway(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.MethodMobileMoney, rows[0].Method)
	assert.Equal(t, "João", rows[0].Order.Customer.Name)
	assert.Equal(t, "2025-10-02", rows[0].PaymentDate.String())
}

func TestDelete_IdInexistente_EsGatewayError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.no-existe", r.URL.Query().Get("id"))
		// Con Accept de objeto único, cero filas es un error para PostgREST.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotAcceptable)
		io.WriteString(w, `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned","details":"Results contain 0 rows"}`)
	})

	err := supabase.NewCustomerGateway(c).Delete(context.Background(), "no-existe")
	require.Error(t, err)

	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusNotAcceptable, ge.Status)
	assert.Equal(t, "PGRST116", ge.Code)
	assert.Equal(t, "JSON object requested, multiple (or no) rows returned", ge.Message,
		"el mensaje del servicio llega textual")
}

func TestCount_LeeElContentRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-24/57")
	})

	n, err := supabase.NewCustomerGateway(c).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(57), n)
}

func TestCount_ContentRangeSinTotal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "*/*")
	})

	_, err := supabase.NewCustomerGateway(c).Count(context.Background())
	assert.Error(t, err)
}

func TestGatewayError_MensajesDeOtrasFormas(t *testing.T) {
	// GoTrue usa {msg} o {error_description} en lugar de {message}.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	})

	_, err := supabase.NewCustomerGateway(c).List(context.Background())
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Invalid login credentials", ge.Message)
}

func TestGatewayError_CuerpoNoJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream connect error")
	})

	_, err := supabase.NewCustomerGateway(c).List(context.Background())
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusBadGateway, ge.Status)
	assert.Equal(t, "upstream connect error", ge.Message, "cae al cuerpo crudo")
}
