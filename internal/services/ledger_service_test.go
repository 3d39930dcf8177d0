package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentas/internal/amqp"
	"rentas/internal/core"
	"rentas/internal/log"
)

type fakePublisher struct {
	registered []*amqp.ContractRegisteredMessage
	reports    []*amqp.BuildingReportMessage
	err        error
	closed     bool
}

func (f *fakePublisher) PublishContractRegistered(_ context.Context, msg *amqp.ContractRegisteredMessage) error {
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, msg)
	return nil
}

func (f *fakePublisher) PublishBuildingReport(_ context.Context, msg *amqp.BuildingReportMessage) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, msg)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func newTestLedger(t *testing.T, pub EventPublisher, capacity int) (*LedgerService, *bytes.Buffer) {
	t.Helper()
	m, err := NewBuildingManager(2025, 3)
	require.NoError(t, err)
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Component: log.ComponentApp, Output: &buf})
	return NewLedgerService(m, pub, logger, capacity), &buf
}

func TestLedgerService_RegisterPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc, logs := newTestLedger(t, pub, 16)
	ctx := context.Background()

	summary, err := svc.Register(ctx, standardInput("D101", 4, "2", "0"))
	require.NoError(t, err)
	assert.True(t, summary.Debt.Equal(dec("8500")))

	require.Len(t, pub.registered, 1)
	assert.Equal(t, "D101", pub.registered[0].Unit)
	assert.Equal(t, "17000", pub.registered[0].AmountPaid)
	assert.Equal(t, 3, pub.registered[0].Month)
	assert.Contains(t, logs.String(), "Contract registered")
	assert.Contains(t, logs.String(), "component=ledger")
}

func TestLedgerService_RegisterRejected(t *testing.T) {
	pub := &fakePublisher{}
	svc, logs := newTestLedger(t, pub, 16)

	_, err := svc.Register(context.Background(), historicInput("D101", "0", "1", "0"))
	assert.ErrorIs(t, err, core.ErrInvalidHistoricRent)
	assert.Empty(t, pub.registered)
	assert.Equal(t, 0, svc.Manager().Len())
	assert.Contains(t, logs.String(), "Contract registration rejected")
}

func TestLedgerService_PublishFailureDoesNotFailRegistration(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, logs := newTestLedger(t, pub, 16)

	_, err := svc.Register(context.Background(), standardInput("D101", 3, "1", "0"))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Manager().Len())
	assert.Contains(t, logs.String(), "broker down")

	_, err = svc.Close(context.Background())
	require.NoError(t, err)
	assert.True(t, pub.closed)
}

func TestLedgerService_NilPublisher(t *testing.T) {
	svc, _ := newTestLedger(t, nil, 16)
	ctx := context.Background()

	_, err := svc.Register(ctx, standardInput("D101", 3, "1", "0"))
	require.NoError(t, err)

	totals, err := svc.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Contracts)
}

func TestLedgerService_CapacityWarning(t *testing.T) {
	svc, logs := newTestLedger(t, nil, 1)
	ctx := context.Background()

	_, err := svc.Register(ctx, standardInput("D101", 3, "1", "0"))
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "More contracts registered than units")

	_, err = svc.Register(ctx, standardInput("D102", 3, "1", "0"))
	require.NoError(t, err, "registration beyond capacity is still accepted")
	assert.Contains(t, logs.String(), "More contracts registered than units")
	assert.Equal(t, 2, svc.Manager().Len())
}

func TestLedgerService_RegisterAllAndClose(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestLedger(t, pub, 16)
	ctx := context.Background()

	summaries, errs := svc.RegisterAll(ctx, []core.ContractInput{
		historicInput("D101", "5000", "0", "10000"),
		standardInput("D102", 5, "1", "0"),
		historicInput("D103", "2500", "0", "5000"),
	})
	require.Len(t, summaries, 2)
	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0].Error(), "contract #2"))
	assert.ErrorIs(t, errs[0], core.ErrInvalidBedroomCount)

	assert.Len(t, svc.Summaries(), 2)

	totals, err := svc.Close(ctx)
	require.NoError(t, err)
	assert.True(t, totals.TotalCollected.Equal(dec("15000")))
	assert.Equal(t, totals.Contracts, totals.Total())

	require.Len(t, pub.reports, 1)
	assert.Equal(t, "15000", pub.reports[0].TotalCollected)
	assert.Len(t, pub.registered, 2)
}

func TestLedgerService_RegisterAllStopsWhenCancelled(t *testing.T) {
	pub := &fakePublisher{}
	svc, logs := newTestLedger(t, pub, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summaries, errs := svc.RegisterAll(ctx, []core.ContractInput{
		standardInput("D101", 3, "1", "0"),
		standardInput("D102", 4, "1", "0"),
	})
	assert.Empty(t, summaries)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
	assert.Contains(t, errs[0].Error(), "contracts #1-#2")
	assert.Equal(t, 0, svc.Manager().Len())
	assert.Empty(t, pub.registered)
	assert.Contains(t, logs.String(), "Batch registration interrupted")
}
