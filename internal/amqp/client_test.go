package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"rentas/internal/core"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	deadline bool
}

type fakeChannel struct {
	published []publishedMessage
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	_, hasDeadline := ctx.Deadline()
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, msg: msg, deadline: hasDeadline})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleSummary() core.ContractSummary {
	return core.ContractSummary{
		Tenant:      "Luis",
		Unit:        "D202",
		Kind:        core.Historic,
		MonthlyRent: decimal.NewFromInt(5000),
		MonthsPaid:  decimal.RequireFromString("4.4"),
		AmountPaid:  decimal.NewFromInt(22000),
		ExpectedDue: decimal.NewFromInt(20000),
		Debt:        decimal.Zero,
		Credit:      decimal.NewFromInt(2000),
		Standing:    core.InCredit,
	}
}

func TestNewContractRegisteredMessage(t *testing.T) {
	msg := NewContractRegisteredMessage(2025, 4, sampleSummary())

	if msg.ID == "" || msg.Type != TypeContractRegistered {
		t.Fatalf("unexpected identity: id=%q type=%q", msg.ID, msg.Type)
	}
	if msg.MonthsPaid != "4.4" || msg.Credit != "2000" || msg.Debt != "0" {
		t.Errorf("unexpected amounts: %+v", msg)
	}
	if msg.Kind != "historic" || msg.Year != 2025 || msg.Month != 4 {
		t.Errorf("unexpected fields: %+v", msg)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["amount_paid"] != "22000" {
		t.Errorf("amount_paid should be encoded as a string, got %#v", raw["amount_paid"])
	}
}

func TestClient_PublishContractRegistered(t *testing.T) {
	ch := &fakeChannel{}
	client := &Client{channel: ch, exchangeName: "rentas", queueName: "rent_events"}

	msg := NewContractRegisteredMessage(2025, 4, sampleSummary())
	if err := client.PublishContractRegistered(context.Background(), msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(ch.published) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(ch.published))
	}
	got := ch.published[0]
	if got.exchange != "rentas" || got.key != TypeContractRegistered {
		t.Errorf("unexpected routing: exchange=%q key=%q", got.exchange, got.key)
	}
	if got.msg.MessageId != msg.ID || got.msg.ContentType != "application/json" {
		t.Errorf("unexpected publishing: %+v", got.msg)
	}
	if got.msg.DeliveryMode != amqp091.Persistent {
		t.Errorf("messages must be persistent")
	}
	if !got.deadline {
		t.Errorf("publish must be bounded by a timeout")
	}
}

func TestClient_PublishBuildingReport(t *testing.T) {
	ch := &fakeChannel{}
	client := &Client{channel: ch, exchangeName: "rentas", queueName: "rent_events"}

	totals := core.BuildingTotals{
		Year:           2025,
		Month:          4,
		Contracts:      2,
		TotalCollected: decimal.NewFromInt(15000),
		Classification: core.Classification{InDebt: 1, InCredit: 1},
	}
	if err := client.PublishBuildingReport(context.Background(), NewBuildingReportMessage(totals)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(ch.published) != 1 || ch.published[0].key != TypeBuildingReport {
		t.Fatalf("unexpected published messages: %+v", ch.published)
	}
	var decoded BuildingReportMessage
	if err := json.Unmarshal(ch.published[0].msg.Body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.TotalCollected != "15000" || decoded.InDebt != 1 || decoded.Contracts != 2 {
		t.Errorf("unexpected body: %+v", decoded)
	}
}

func TestClient_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	client := &Client{channel: &fakeChannel{err: boom}, exchangeName: "rentas"}

	err := client.PublishContractRegistered(context.Background(), NewContractRegisteredMessage(2025, 1, sampleSummary()))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped channel error, got %v", err)
	}
}

func TestClient_Close(t *testing.T) {
	ch := &fakeChannel{}
	client := &Client{channel: ch}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Errorf("channel should be closed")
	}
}
