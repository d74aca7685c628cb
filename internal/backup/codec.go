package backup

import (
	"fmt"

	"github.com/diewo77/pedidos-ledger/internal/models"
)

// Document is the flat wire form of one record. Field names match the
// collections written by the original mobile client so existing remote backups
// stay readable.
//
// One coercion rule applies everywhere: integer ids travel as 64-bit values
// and are narrowed on read (JSON decoding hands them back as float64, so reads
// accept int64, int, and float64). Optional strings are encoded as "" — never
// as a missing key — and both "" and a missing key mean "absent" on import.
type Document map[string]any

const (
	CollectionClients  = "Clientes"
	CollectionProducts = "Productos"
	CollectionPayments = "Abonos"
	CollectionMetadata = "BackupMetadata"
)

func EncodeClient(c models.Client) Document {
	return Document{
		"id":       int64(c.ID),
		"nombre":   c.Name,
		"telefono": c.Phone,
	}
}

func EncodeProduct(p models.Product) Document {
	return Document{
		"id":          int64(p.ID),
		"clienteId":   int64(p.ClientID),
		"nombre":      p.Name,
		"precio":      p.Price,
		"fotoUri":     p.PhotoPath,
		"fechaPedido": p.OrderDate,
	}
}

func EncodePayment(p models.Payment) Document {
	return Document{
		"id":                  int64(p.ID),
		"clienteId":           int64(p.ClientID),
		"monto":               p.Amount,
		"fecha":               p.PaymentDate,
		"fechaProductoPedido": p.LinkedOrderDate,
	}
}

func DecodeClient(doc Document) (models.Client, error) {
	id, err := docID(doc, "id")
	if err != nil {
		return models.Client{}, err
	}
	return models.Client{
		ID:    id,
		Name:  docString(doc, "nombre"),
		Phone: docString(doc, "telefono"),
	}, nil
}

func DecodeProduct(doc Document) (models.Product, error) {
	id, err := docID(doc, "id")
	if err != nil {
		return models.Product{}, err
	}
	clientID, err := docID(doc, "clienteId")
	if err != nil {
		return models.Product{}, err
	}
	return models.Product{
		ID:        id,
		ClientID:  clientID,
		Name:      docString(doc, "nombre"),
		Price:     docFloat(doc, "precio"),
		PhotoPath: docString(doc, "fotoUri"),
		OrderDate: docString(doc, "fechaPedido"),
	}, nil
}

func DecodePayment(doc Document) (models.Payment, error) {
	id, err := docID(doc, "id")
	if err != nil {
		return models.Payment{}, err
	}
	clientID, err := docID(doc, "clienteId")
	if err != nil {
		return models.Payment{}, err
	}
	return models.Payment{
		ID:              id,
		ClientID:        clientID,
		Amount:          docFloat(doc, "monto"),
		PaymentDate:     docString(doc, "fecha"),
		LinkedOrderDate: docString(doc, "fechaProductoPedido"),
	}, nil
}

func docID(doc Document, key string) (uint, error) {
	v, ok := doc[key]
	if !ok {
		return 0, fmt.Errorf("document missing %q", key)
	}
	switch n := v.(type) {
	case int64:
		return uint(n), nil
	case int:
		return uint(n), nil
	case float64:
		return uint(int64(n)), nil
	default:
		return 0, fmt.Errorf("document field %q has non-numeric type %T", key, v)
	}
}

func docString(doc Document, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func docFloat(doc Document, key string) float64 {
	switch n := doc[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
