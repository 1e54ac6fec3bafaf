package entity

import "time"

// Customer cliente de la lavandería.
// Cada fila pertenece al principal autenticado que la creó (owner); el
// gateway aplica ese aislamiento por fila, aquí solo se transporta.
type Customer struct {
	ID        string    `json:"id,omitempty"` // lo genera el gateway al insertar
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Address   string    `json:"address"`
	Document  string    `json:"document,omitempty"` // BI o NUIT, opcional
	OwnerID   string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// NewCustomer campos de entrada para crear un cliente.
type NewCustomer struct {
	Name     string
	Contact  string
	Address  string
	Document string
}

// CustomerPatch actualización parcial: los campos nil no viajan en el PATCH
// y no se revalidan.
type CustomerPatch struct {
	Name     *string `json:"name,omitempty"`
	Contact  *string `json:"contact,omitempty"`
	Address  *string `json:"address,omitempty"`
	Document *string `json:"document,omitempty"`
}

// CustomerSummary proyección de cliente embebida en joins de órdenes y pagos.
type CustomerSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address,omitempty"` // solo presente en el join de órdenes
}
