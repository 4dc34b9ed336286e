package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/order-service/progression"
	"github.com/jcmexdev/storefront/internal/store"
)

// Service answers order reads. Every read first lets the progression
// engine bring the order up to date.
type Service struct {
	db     *store.DB
	repo   *Repository
	engine *progression.Engine
}

func NewService(db *store.DB, repo *Repository, engine *progression.Engine) *Service {
	return &Service{db: db, repo: repo, engine: engine}
}

// ListOrders returns the person's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, personID string) ([]domain.OrderSummary, error) {
	orders, err := s.repo.ListByPerson(ctx, s.db, personID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, orders)
}

// ListAllOrders is the back-office listing.
func (s *Service) ListAllOrders(ctx context.Context, f ListFilter) ([]domain.OrderSummary, error) {
	orders, err := s.repo.ListFiltered(ctx, s.db, f)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(ctx, orders)
	if err != nil {
		return nil, err
	}
	if f.Status == "" {
		return summaries, nil
	}
	// the engine may have moved some out of the requested status
	kept := summaries[:0]
	for _, o := range summaries {
		if o.Status == f.Status {
			kept = append(kept, o)
		}
	}
	return kept, nil
}

func (s *Service) summarize(ctx context.Context, orders []domain.Order) ([]domain.OrderSummary, error) {
	summaries := make([]domain.OrderSummary, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if _, err := s.engine.Apply(ctx, s.db, o); err != nil {
			return nil, err
		}
		lines, err := s.repo.Lines(ctx, s.db, o.ID)
		if err != nil {
			return nil, err
		}
		items := 0
		for _, l := range lines {
			items += l.Quantity
		}
		summaries = append(summaries, domain.OrderSummary{Order: *o, ItemCount: items, Total: Total(*o, lines)})
	}
	return summaries, nil
}

// GetOrderDetails returns an order with its lines and payment. Customers
// may only read their own orders; admin and staff read any.
func (s *Service) GetOrderDetails(ctx context.Context, orderID, requesterID string, role domain.Role) (*domain.OrderDetail, error) {
	o, err := s.repo.Get(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if !role.Privileged() && o.PersonID != requesterID {
		// indistinguishable from a missing order to the caller
		return nil, fmt.Errorf("orders: %s requested by %s: %w", orderID, requesterID, domain.ErrOrderNotFound)
	}

	if _, err := s.engine.Apply(ctx, s.db, o); err != nil {
		return nil, err
	}

	lines, err := s.repo.Lines(ctx, s.db, o.ID)
	if err != nil {
		return nil, err
	}
	payment, err := s.repo.Payment(ctx, s.db, o.ID)
	if err != nil {
		return nil, err
	}
	return &domain.OrderDetail{Order: *o, Lines: lines, Payment: payment, Total: Total(*o, lines)}, nil
}

type ReconcileReport struct {
	Scanned  int
	Advanced int
}

// ReconcileAll runs the progression engine over every unsettled order.
func (s *Service) ReconcileAll(ctx context.Context) (ReconcileReport, error) {
	orders, err := s.repo.ListUnsettled(ctx, s.db)
	if err != nil {
		return ReconcileReport{}, err
	}

	var report ReconcileReport
	for i := range orders {
		changed, err := s.engine.Apply(ctx, s.db, &orders[i])
		if err != nil {
			return report, err
		}
		report.Scanned++
		if changed {
			report.Advanced++
		}
	}
	slog.InfoContext(ctx, "reconcile finished", "scanned", report.Scanned, "advanced", report.Advanced)
	return report, nil
}
