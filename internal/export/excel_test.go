package export

import (
	"bytes"
	"testing"

	"github.com/diewo77/pedidos-ledger/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookLayout(t *testing.T) {
	clients := []models.Client{{ID: 1, Name: "Roberto López", Phone: "555-1111"}}
	products := []models.Product{{ID: 10, ClientID: 1, Name: "Blusa", Price: 120.5, OrderDate: "2024-12-01"}}
	payments := []models.Payment{{ID: 20, ClientID: 1, Amount: 50, PaymentDate: "2024-12-05"}}

	var buf bytes.Buffer
	if err := Write(&buf, clients, products, payments); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Clientes", "Productos", "Abonos"}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v got %v", want, sheets)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Fatalf("expected sheet %q at %d got %q", name, i, sheets[i])
		}
	}

	rows, err := f.GetRows("Clientes")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Nombre" || rows[0][2] != "Teléfono" {
		t.Fatalf("unexpected client header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "Roberto López" || rows[1][2] != "555-1111" {
		t.Fatalf("unexpected client row: %v", rows[1])
	}

	rows, err = f.GetRows("Productos")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if rows[0][0] != "ID Producto" || rows[0][3] != "Cliente ID" {
		t.Fatalf("unexpected product header: %v", rows[0])
	}
	if rows[1][2] != "120.5" {
		t.Fatalf("expected string-formatted price, got %q", rows[1][2])
	}

	rows, err = f.GetRows("Abonos")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if rows[0][1] != "Cantidad" || rows[0][2] != "Fecha" {
		t.Fatalf("unexpected payment header: %v", rows[0])
	}
	if rows[1][1] != "50" || rows[1][3] != "1" {
		t.Fatalf("unexpected payment row: %v", rows[1])
	}
}

func TestWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, nil, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Clientes")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the header row got %d", len(rows))
	}
}
