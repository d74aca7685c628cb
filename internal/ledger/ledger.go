package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/diewo77/pedidos-ledger/internal/models"
	"github.com/diewo77/pedidos-ledger/internal/validation"
	"gorm.io/gorm"
)

// Service owns Client/Product/Payment records and answers balance queries over
// them. The store handle is injected at construction time; there is no global
// instance. All operations are plain synchronous calls — running them off the
// caller's main goroutine is the caller's concern, not the ledger's.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// DB exposes the underlying handle for read-only collaborators (export, backup).
func (s *Service) DB() *gorm.DB { return s.db }

func validationErr(v validation.Violations) error { return &ValidationError{Violations: v} }

func (s *Service) ensureClient(id uint) error {
	var count int64
	if err := s.db.Model(&models.Client{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return storageErr("lookup client", err)
	}
	if count == 0 {
		return &NotFoundError{Entity: "client", ID: id}
	}
	return nil
}

// --- Clients ---

func (s *Service) CreateClient(name, phone string) (*models.Client, error) {
	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.Required("phone", phone, v)
	if !v.Empty() {
		return nil, validationErr(v)
	}
	c := models.Client{Name: name, Phone: phone}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, storageErr("create client", err)
	}
	return &c, nil
}

func (s *Service) GetClient(id uint) (*models.Client, error) {
	var c models.Client
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: id}
		}
		return nil, storageErr("get client", err)
	}
	return &c, nil
}

func (s *Service) UpdateClient(id uint, name, phone string) error {
	v := validation.Violations{}
	validation.Required("name", name, v)
	if !v.Empty() {
		return validationErr(v)
	}
	var c models.Client
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "client", ID: id}
		}
		return storageErr("get client", err)
	}
	c.Name = name
	c.Phone = phone
	if err := s.db.Save(&c).Error; err != nil {
		return storageErr("update client", err)
	}
	return nil
}

// DeleteClient removes all Products and Payments owned by id and, when cascade
// is true, the Client record itself. With cascade false the client is kept and
// only its owned records are cleared (the "reset" variant). The whole removal
// runs in one transaction so a failure mid-cascade cannot strand orphans.
func (s *Service) DeleteClient(id uint, cascade bool) error {
	if err := s.ensureClient(id); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if cascade {
			return tx.Delete(&models.Client{}, id).Error
		}
		return nil
	})
	if err != nil {
		return storageErr("delete client", err)
	}
	return nil
}

// ListClients returns clients in insertion order. A non-empty query filters by
// case-insensitive substring match on the name.
func (s *Service) ListClients(query string) ([]models.Client, error) {
	dbq := s.db.Order("id asc")
	if query != "" {
		dbq = dbq.Where("lower(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var clients []models.Client
	if err := dbq.Find(&clients).Error; err != nil {
		return nil, storageErr("list clients", err)
	}
	return clients, nil
}

// --- Products ---

func (s *Service) AddProduct(clientID uint, name string, price float64, photoPath, orderDate string) (*models.Product, error) {
	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.PositiveFloat("price", price, v)
	validation.ISODate("order_date", orderDate, v)
	if !v.Empty() {
		return nil, validationErr(v)
	}
	if err := s.ensureClient(clientID); err != nil {
		return nil, err
	}
	p := models.Product{ClientID: clientID, Name: name, Price: price, PhotoPath: photoPath, OrderDate: orderDate}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, storageErr("create product", err)
	}
	return &p, nil
}

func (s *Service) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		return nil, storageErr("get product", err)
	}
	return &p, nil
}

// ProductUpdate carries the fields of an edit; nil pointers leave the stored
// value untouched.
type ProductUpdate struct {
	Name      *string
	Price     *float64
	PhotoPath *string
	OrderDate *string
}

func (s *Service) UpdateProduct(id uint, upd ProductUpdate) error {
	v := validation.Violations{}
	if upd.Name != nil {
		validation.Required("name", *upd.Name, v)
	}
	if upd.Price != nil {
		validation.PositiveFloat("price", *upd.Price, v)
	}
	if upd.OrderDate != nil {
		validation.ISODate("order_date", *upd.OrderDate, v)
	}
	if !v.Empty() {
		return validationErr(v)
	}
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "product", ID: id}
		}
		return storageErr("get product", err)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.PhotoPath != nil {
		p.PhotoPath = *upd.PhotoPath
	}
	if upd.OrderDate != nil {
		p.OrderDate = *upd.OrderDate
	}
	if err := s.db.Save(&p).Error; err != nil {
		return storageErr("update product", err)
	}
	return nil
}

// DeleteProduct reports how many rows were removed (0 or 1) so callers can
// tell "not found" from "deleted".
func (s *Service) DeleteProduct(id uint) (int64, error) {
	res := s.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return 0, storageErr("delete product", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Service) ListProductsByClient(clientID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("client_id = ?", clientID).Order("id asc").Find(&products).Error; err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

// ProductsByClientAndDate lists one order batch: the client's products whose
// OrderDate equals the given date.
func (s *Service) ProductsByClientAndDate(clientID uint, orderDate string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("client_id = ? AND order_date = ?", clientID, orderDate).Order("id asc").Find(&products).Error; err != nil {
		return nil, storageErr("list products by date", err)
	}
	return products, nil
}

// --- Payments ---

// AddPayment registers a payment against a client. When linkedOrderDate is
// empty it defaults to the most recent order date among the client's products,
// or today when the client has no dated products yet. A supplied value is
// advisory grouping only and never affects the balance.
func (s *Service) AddPayment(clientID uint, amount float64, paymentDate, linkedOrderDate string) (*models.Payment, error) {
	v := validation.Violations{}
	validation.PositiveFloat("amount", amount, v)
	validation.ISODate("payment_date", paymentDate, v)
	validation.ISODate("linked_order_date", linkedOrderDate, v)
	if !v.Empty() {
		return nil, validationErr(v)
	}
	if err := s.ensureClient(clientID); err != nil {
		return nil, err
	}
	if linkedOrderDate == "" {
		dates, err := s.DistinctOrderDates(clientID)
		if err != nil {
			return nil, err
		}
		if len(dates) > 0 {
			linkedOrderDate = dates[len(dates)-1]
		} else {
			linkedOrderDate = time.Now().Format("2006-01-02")
		}
	}
	p := models.Payment{ClientID: clientID, Amount: amount, PaymentDate: paymentDate, LinkedOrderDate: linkedOrderDate}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, storageErr("create payment", err)
	}
	return &p, nil
}

func (s *Service) GetPayment(id uint) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "payment", ID: id}
		}
		return nil, storageErr("get payment", err)
	}
	return &p, nil
}

type PaymentUpdate struct {
	Amount          *float64
	PaymentDate     *string
	LinkedOrderDate *string
}

func (s *Service) UpdatePayment(id uint, upd PaymentUpdate) error {
	v := validation.Violations{}
	if upd.Amount != nil {
		validation.PositiveFloat("amount", *upd.Amount, v)
	}
	if upd.PaymentDate != nil {
		validation.ISODate("payment_date", *upd.PaymentDate, v)
	}
	if upd.LinkedOrderDate != nil {
		validation.ISODate("linked_order_date", *upd.LinkedOrderDate, v)
	}
	if !v.Empty() {
		return validationErr(v)
	}
	var p models.Payment
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "payment", ID: id}
		}
		return storageErr("get payment", err)
	}
	if upd.Amount != nil {
		p.Amount = *upd.Amount
	}
	if upd.PaymentDate != nil {
		p.PaymentDate = *upd.PaymentDate
	}
	if upd.LinkedOrderDate != nil {
		p.LinkedOrderDate = *upd.LinkedOrderDate
	}
	if err := s.db.Save(&p).Error; err != nil {
		return storageErr("update payment", err)
	}
	return nil
}

func (s *Service) DeletePayment(id uint) (int64, error) {
	res := s.db.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return 0, storageErr("delete payment", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Service) ListPaymentsByClient(clientID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("client_id = ?", clientID).Order("id asc").Find(&payments).Error; err != nil {
		return nil, storageErr("list payments", err)
	}
	return payments, nil
}

// --- Queries ---

// Balance returns sum(product prices) - sum(payment amounts) for the client.
// Positive means the client owes money, negative means credit, zero settled.
func (s *Service) Balance(clientID uint) (float64, error) {
	if err := s.ensureClient(clientID); err != nil {
		return 0, err
	}
	var owed, paid float64
	if err := s.db.Model(&models.Product{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&owed).Error; err != nil {
		return 0, storageErr("sum products", err)
	}
	if err := s.db.Model(&models.Payment{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return 0, storageErr("sum payments", err)
	}
	return owed - paid, nil
}

// DistinctOrderDates returns the unique non-empty order dates among a client's
// products, ascending.
func (s *Service) DistinctOrderDates(clientID uint) ([]string, error) {
	var dates []string
	if err := s.db.Model(&models.Product{}).
		Where("client_id = ? AND order_date <> ''", clientID).
		Distinct().
		Order("order_date asc").
		Pluck("order_date", &dates).Error; err != nil {
		return nil, storageErr("distinct order dates", err)
	}
	return dates, nil
}

// OrphanReport lists records whose owning client no longer exists. Orphans can
// only appear through out-of-band writes (a restore payload referencing a
// client deleted locally, or manual DB edits); the ledger's own cascade is
// transactional and never strands them.
type OrphanReport struct {
	Products []models.Product `json:"products"`
	Payments []models.Payment `json:"payments"`
}

func (s *Service) OrphanScan() (*OrphanReport, error) {
	rep := &OrphanReport{}
	if err := s.db.
		Where("client_id NOT IN (?)", s.db.Model(&models.Client{}).Select("id")).
		Find(&rep.Products).Error; err != nil {
		return nil, storageErr("scan orphan products", err)
	}
	if err := s.db.
		Where("client_id NOT IN (?)", s.db.Model(&models.Client{}).Select("id")).
		Find(&rep.Payments).Error; err != nil {
		return nil, storageErr("scan orphan payments", err)
	}
	return rep, nil
}

// Stats summarizes the whole ledger for dashboards.
type Stats struct {
	Clients     int64   `json:"clients"`
	Products    int64   `json:"products"`
	Payments    int64   `json:"payments"`
	Outstanding float64 `json:"outstanding"`
}

func (s *Service) Stats() (*Stats, error) {
	st := &Stats{}
	if err := s.db.Model(&models.Client{}).Count(&st.Clients).Error; err != nil {
		return nil, storageErr("count clients", err)
	}
	if err := s.db.Model(&models.Product{}).Count(&st.Products).Error; err != nil {
		return nil, storageErr("count products", err)
	}
	if err := s.db.Model(&models.Payment{}).Count(&st.Payments).Error; err != nil {
		return nil, storageErr("count payments", err)
	}
	var owed, paid float64
	if err := s.db.Model(&models.Product{}).Select("COALESCE(SUM(price), 0)").Scan(&owed).Error; err != nil {
		return nil, storageErr("sum products", err)
	}
	if err := s.db.Model(&models.Payment{}).Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
		return nil, storageErr("sum payments", err)
	}
	st.Outstanding = owed - paid
	return st, nil
}
