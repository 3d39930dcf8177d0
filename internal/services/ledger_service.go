package services

import (
	"context"
	"fmt"

	"rentas/internal/amqp"
	"rentas/internal/core"
	"rentas/internal/log"
)

// EventPublisher is implemented by *amqp.Client.
type EventPublisher interface {
	PublishContractRegistered(ctx context.Context, msg *amqp.ContractRegisteredMessage) error
	PublishBuildingReport(ctx context.Context, msg *amqp.BuildingReportMessage) error
	Close() error
}

// LedgerService runs one registration session: it feeds the building manager,
// logs every outcome and publishes events when a publisher is configured.
type LedgerService struct {
	manager   *BuildingManager
	publisher EventPublisher
	logger    *log.Logger
	capacity  int
}

// NewLedgerService accepts a nil publisher (events disabled) and a nil logger
// (logs discarded). A capacity of 0 disables the capacity warning.
func NewLedgerService(manager *BuildingManager, publisher EventPublisher, logger *log.Logger, capacity int) *LedgerService {
	if logger == nil {
		logger = log.Discard()
	}
	return &LedgerService{
		manager:   manager,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
		capacity:  capacity,
	}
}

func (s *LedgerService) Manager() *BuildingManager {
	return s.manager
}

// Register stores one contract and returns its summary at the session month.
func (s *LedgerService) Register(ctx context.Context, in core.ContractInput) (core.ContractSummary, error) {
	c, err := s.manager.RegisterContract(in)
	if err != nil {
		fields := log.NewFields().
			WithOperation(log.OpRegister).
			WithPeriod(s.manager.Year(), s.manager.Month()).
			WithError(err)
		fields[log.FieldUnit] = in.Unit
		s.logger.WarnContext(ctx, "Contract registration rejected", fields.ToSlice()...)
		return core.ContractSummary{}, err
	}

	summary := c.Summary(s.manager.Month())
	s.logger.InfoContext(ctx, "Contract registered",
		log.NewFields().
			WithContract(summary).
			WithOperation(log.OpRegister).
			WithPeriod(s.manager.Year(), s.manager.Month()).
			ToSlice()...)

	if s.capacity > 0 && s.manager.Len() > s.capacity {
		s.logger.WarnContext(ctx, "More contracts registered than units in the building",
			log.FieldContracts, s.manager.Len(),
			log.FieldCapacity, s.capacity)
	}

	// Publishing is best effort, the contract is already registered
	if err := s.publishRegistered(ctx, summary); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish contract registered message",
			log.FieldOperation, log.OpPublish,
			log.FieldUnit, summary.Unit,
			log.FieldError, err.Error())
	}

	return summary, nil
}

// RegisterAll registers every input in order and returns the summaries of the
// accepted ones along with the errors of the rejected ones. A cancelled ctx
// stops the batch; the remaining inputs are reported as one error.
func (s *LedgerService) RegisterAll(ctx context.Context, inputs []core.ContractInput) ([]core.ContractSummary, []error) {
	var (
		summaries []core.ContractSummary
		errs      []error
	)
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "Batch registration interrupted",
				log.FieldOperation, log.OpRegister,
				log.FieldContracts, i,
				"remaining", len(inputs)-i)
			errs = append(errs, fmt.Errorf("contracts #%d-#%d not registered: %w", i+1, len(inputs), err))
			break
		}
		summary, err := s.Register(ctx, in)
		if err != nil {
			errs = append(errs, fmt.Errorf("contract #%d: %w", i+1, err))
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, errs
}

// Summaries returns every contract summary in registration order.
func (s *LedgerService) Summaries() []core.ContractSummary {
	return s.manager.Summaries()
}

// Totals returns the building totals without closing the session.
func (s *LedgerService) Totals() core.BuildingTotals {
	return s.manager.Totals()
}

// Close computes the building totals, publishes them and releases the
// publisher.
func (s *LedgerService) Close(ctx context.Context) (core.BuildingTotals, error) {
	totals := s.manager.Totals()
	s.logger.InfoContext(ctx, "Building report",
		log.NewFields().WithTotals(totals).WithOperation(log.OpReport).ToSlice()...)

	if err := s.publishReport(ctx, totals); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish building report message",
			log.FieldOperation, log.OpPublish,
			log.FieldError, err.Error())
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return totals, fmt.Errorf("close publisher: %w", err)
		}
	}
	return totals, nil
}

func (s *LedgerService) publishRegistered(ctx context.Context, summary core.ContractSummary) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP publisher not available, skipping contract registered message")
		return nil
	}
	return s.publisher.PublishContractRegistered(ctx, amqp.NewContractRegisteredMessage(s.manager.Year(), s.manager.Month(), summary))
}

func (s *LedgerService) publishReport(ctx context.Context, totals core.BuildingTotals) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP publisher not available, skipping building report message")
		return nil
	}
	return s.publisher.PublishBuildingReport(ctx, amqp.NewBuildingReportMessage(totals))
}
