package backup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diewo77/pedidos-ledger/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service copies the whole local record set to a DocumentStore and back.
// Restore is a bulk upsert (replace-by-id, last writer wins): records absent
// from the remote payload are never deleted locally.
type Service struct {
	db    *gorm.DB
	store DocumentStore
	log   *zap.Logger
}

func NewService(db *gorm.DB, store DocumentStore, log *zap.Logger) *Service {
	return &Service{db: db, store: store, log: log}
}

// Summary reports how many records a backup or restore touched.
type Summary struct {
	Clients   int   `json:"clients"`
	Products  int   `json:"products"`
	Payments  int   `json:"payments"`
	Timestamp int64 `json:"timestamp"`
}

// Backup uploads every client, product, and payment plus a metadata document
// describing the snapshot.
func (s *Service) Backup(ctx context.Context) (*Summary, error) {
	var clients []models.Client
	if err := s.db.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("read clients: %w", err)
	}
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	var payments []models.Payment
	if err := s.db.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("read payments: %w", err)
	}

	clientDocs := make(map[string]Document, len(clients))
	for _, c := range clients {
		clientDocs[strconv.FormatUint(uint64(c.ID), 10)] = EncodeClient(c)
	}
	productDocs := make(map[string]Document, len(products))
	for _, p := range products {
		productDocs[strconv.FormatUint(uint64(p.ID), 10)] = EncodeProduct(p)
	}
	paymentDocs := make(map[string]Document, len(payments))
	for _, p := range payments {
		paymentDocs[strconv.FormatUint(uint64(p.ID), 10)] = EncodePayment(p)
	}

	if err := s.store.PutAll(ctx, CollectionClients, clientDocs); err != nil {
		return nil, err
	}
	if err := s.store.PutAll(ctx, CollectionProducts, productDocs); err != nil {
		return nil, err
	}
	if err := s.store.PutAll(ctx, CollectionPayments, paymentDocs); err != nil {
		return nil, err
	}

	sum := &Summary{
		Clients:   len(clients),
		Products:  len(products),
		Payments:  len(payments),
		Timestamp: time.Now().UnixMilli(),
	}
	meta := map[string]Document{"latest": {
		"timestamp":      sum.Timestamp,
		"clientesCount":  int64(sum.Clients),
		"productosCount": int64(sum.Products),
		"abonosCount":    int64(sum.Payments),
	}}
	if err := s.store.PutAll(ctx, CollectionMetadata, meta); err != nil {
		return nil, err
	}
	s.log.Info("backup completed",
		zap.Int("clients", sum.Clients),
		zap.Int("products", sum.Products),
		zap.Int("payments", sum.Payments))
	return sum, nil
}

// Restore downloads every collection and upserts the records locally. Documents
// that fail to decode are skipped with a log line rather than aborting the
// whole restore; one bad record should not block the rest.
func (s *Service) Restore(ctx context.Context) (*Summary, error) {
	clientDocs, err := s.store.GetAll(ctx, CollectionClients)
	if err != nil {
		return nil, err
	}
	productDocs, err := s.store.GetAll(ctx, CollectionProducts)
	if err != nil {
		return nil, err
	}
	paymentDocs, err := s.store.GetAll(ctx, CollectionPayments)
	if err != nil {
		return nil, err
	}

	var clients []models.Client
	for key, doc := range clientDocs {
		c, err := DecodeClient(doc)
		if err != nil {
			s.log.Warn("skipping malformed client document", zap.String("key", key), zap.Error(err))
			continue
		}
		clients = append(clients, c)
	}
	var products []models.Product
	for key, doc := range productDocs {
		p, err := DecodeProduct(doc)
		if err != nil {
			s.log.Warn("skipping malformed product document", zap.String("key", key), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	var payments []models.Payment
	for key, doc := range paymentDocs {
		p, err := DecodePayment(doc)
		if err != nil {
			s.log.Warn("skipping malformed payment document", zap.String("key", key), zap.Error(err))
			continue
		}
		payments = append(payments, p)
	}

	if len(clients) > 0 {
		if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&clients).Error; err != nil {
			return nil, fmt.Errorf("upsert clients: %w", err)
		}
	}
	if len(products) > 0 {
		if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&products).Error; err != nil {
			return nil, fmt.Errorf("upsert products: %w", err)
		}
	}
	if len(payments) > 0 {
		if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&payments).Error; err != nil {
			return nil, fmt.Errorf("upsert payments: %w", err)
		}
	}

	sum := &Summary{
		Clients:   len(clients),
		Products:  len(products),
		Payments:  len(payments),
		Timestamp: time.Now().UnixMilli(),
	}
	s.log.Info("restore completed",
		zap.Int("clients", sum.Clients),
		zap.Int("products", sum.Products),
		zap.Int("payments", sum.Payments))
	return sum, nil
}
