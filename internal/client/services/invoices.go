package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/fallback"
	"github.com/dmitrijs2005/jobkeeper/internal/client/invoicedoc"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/validate"
)

type InvoiceService interface {
	List(ctx context.Context, clientID string) ([]models.Invoice, error)
	Get(ctx context.Context, id string) (models.Invoice, error)
	// Create fills in the total from the line items when there are any.
	Create(ctx context.Context, inv models.Invoice) (models.Invoice, error)
	Update(ctx context.Context, inv models.Invoice) (models.Invoice, error)
	MarkPaid(ctx context.Context, id string) (models.Invoice, error)
	Delete(ctx context.Context, id string) error
	// Export writes the invoice as an HTML document and returns its path.
	Export(ctx context.Context, id string) (string, error)
}

type invoiceService struct {
	acc      *fallback.Accessor[models.Invoice]
	clients  *fallback.Accessor[models.Client]
	business invoicedoc.Business
	dataDir  string
	now      Clock
}

func NewInvoiceService(acc *fallback.Accessor[models.Invoice], clients *fallback.Accessor[models.Client], business invoicedoc.Business, dataDir string, now Clock) InvoiceService {
	return &invoiceService{acc: acc, clients: clients, business: business, dataDir: dataDir, now: now}
}

func (s *invoiceService) List(ctx context.Context, clientID string) ([]models.Invoice, error) {
	return s.acc.List(ctx, clientID)
}

func (s *invoiceService) Get(ctx context.Context, id string) (models.Invoice, error) {
	inv, ok, err := s.acc.Get(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if !ok {
		return models.Invoice{}, fmt.Errorf("invoice %s: %w", id, common.ErrorNotFound)
	}
	return inv, nil
}

func (s *invoiceService) prepare(inv *models.Invoice) error {
	if inv.Status == "" {
		inv.Status = models.InvoiceDraft
	}
	if len(inv.Items) > 0 {
		inv.TotalAmount = inv.ItemsTotal()
	}
	if inv.IssuedDate.IsZero() {
		inv.IssuedDate = models.NewDate(s.now())
	}
	if err := validate.Struct(*inv); err != nil {
		return err
	}
	stamp(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt, s.now())
	return nil
}

func (s *invoiceService) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	if err := s.prepare(&inv); err != nil {
		return models.Invoice{}, err
	}
	return s.acc.Create(ctx, inv)
}

func (s *invoiceService) Update(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	if err := s.prepare(&inv); err != nil {
		return models.Invoice{}, err
	}
	return s.acc.Update(ctx, inv)
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string) (models.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.Status = models.InvoicePaid
	return s.Update(ctx, inv)
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	return s.acc.Delete(ctx, id)
}

func (s *invoiceService) Export(ctx context.Context, id string) (string, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	c, ok, err := s.clients.Get(ctx, inv.ClientID)
	if err != nil {
		return "", err
	}
	if !ok {
		c = models.Client{ID: inv.ClientID, Name: "Unknown client"}
	}
	path, err := invoicedoc.Export(s.dataDir, s.business, c, inv)
	if err != nil {
		return "", fmt.Errorf("export invoice: %w", err)
	}
	return path, nil
}
