package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/diewo77/pedidos-ledger/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet and header layout of the exported workbook. The shape is a flat dump:
// one sheet per entity, header row first, one row per record, no aggregation.
var (
	clientHeaders  = []any{"ID", "Nombre", "Teléfono"}
	productHeaders = []any{"ID Producto", "Nombre Producto", "Precio", "Cliente ID"}
	paymentHeaders = []any{"ID Abono", "Cantidad", "Fecha", "Cliente ID"}
)

// Workbook builds the three-sheet export. It is a pure read-only consumer of
// the record slices; callers fetch them from the ledger.
func Workbook(clients []models.Client, products []models.Product, payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Clientes"); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Productos"); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Abonos"); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow("Clientes", "A1", &clientHeaders); err != nil {
		return nil, err
	}
	for i, c := range clients {
		row := []any{formatID(c.ID), c.Name, c.Phone}
		if err := f.SetSheetRow("Clientes", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetSheetRow("Productos", "A1", &productHeaders); err != nil {
		return nil, err
	}
	for i, p := range products {
		row := []any{formatID(p.ID), p.Name, formatAmount(p.Price), formatID(p.ClientID)}
		if err := f.SetSheetRow("Productos", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetSheetRow("Abonos", "A1", &paymentHeaders); err != nil {
		return nil, err
	}
	for i, p := range payments {
		row := []any{formatID(p.ID), formatAmount(p.Amount), p.PaymentDate, formatID(p.ClientID)}
		if err := f.SetSheetRow("Abonos", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Write streams the workbook to w (an http response, a file, ...).
func Write(w io.Writer, clients []models.Client, products []models.Product, payments []models.Payment) error {
	f, err := Workbook(clients, products, payments)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func formatID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func formatAmount(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
