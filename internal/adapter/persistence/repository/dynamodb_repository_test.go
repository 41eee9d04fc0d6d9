package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// fakeDynamo records the last request of each kind and replays canned answers.
type fakeDynamo struct {
	getItem    map[string]types.AttributeValue
	updateOut  map[string]types.AttributeValue
	updateErr  error
	transactIn *dynamodb.TransactWriteItemsInput
	transactEr error
	updateIn   *dynamodb.UpdateItemInput
	queryOut   []*dynamodb.QueryOutput
	queryIns   []*dynamodb.QueryInput
}

func (f *fakeDynamo) PutItem(_ context.Context, _ *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryIns = append(f.queryIns, in)
	if len(f.queryOut) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	out := f.queryOut[0]
	f.queryOut = f.queryOut[1:]
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transactIn = in
	if f.transactEr != nil {
		return nil, f.transactEr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func cancelledAt(i int) error {
	reasons := make([]types.CancellationReason, i+1)
	for j := range reasons {
		reasons[j].Code = aws.String("None")
	}
	reasons[i].Code = aws.String("ConditionalCheckFailed")
	return &types.TransactionCanceledException{Message: aws.String("cancelled"), CancellationReasons: reasons}
}

var testDay = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func sampleBooking(status entities.BookingStatus) entities.Booking {
	return entities.Booking{
		ID:         "b-1",
		QuoteID:    "q-1",
		PickupDate: testDay,
		PickupTime: "08:00-10:00",
		Address:    "12 Elm St",
		Phone:      "+15551234567",
		Status:     status,
		CreatedAt:  testDay,
		UpdatedAt:  testDay,
	}
}

func TestBookingDynamoRepository_CreateWithSlot(t *testing.T) {
	t.Run("writes lock and booking in one transaction", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		got, err := repo.CreateWithSlot(context.Background(), sampleBooking(entities.BookingStatusScheduled))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "b-1" {
			t.Fatalf("unexpected booking: %+v", got)
		}
		items := fake.transactIn.TransactItems
		if len(items) != 2 || items[0].Put == nil || items[1].Put == nil {
			t.Fatalf("expected two puts, got %+v", items)
		}
		if aws.ToString(items[0].Put.TableName) != "slot_locks" {
			t.Fatalf("expected lock table first, got %s", aws.ToString(items[0].Put.TableName))
		}
		var lock slotLockItem
		if err := attributevalue.UnmarshalMap(items[0].Put.Item, &lock); err != nil {
			t.Fatalf("unmarshal lock: %v", err)
		}
		if lock.ID != "2025-03-03#08:00-10:00" || lock.BookingID != "b-1" {
			t.Fatalf("unexpected lock: %+v", lock)
		}
		var stored bookingItem
		if err := attributevalue.UnmarshalMap(items[1].Put.Item, &stored); err != nil {
			t.Fatalf("unmarshal booking: %v", err)
		}
		if stored.PickupDate != "2025-03-03" {
			t.Fatalf("expected civil date, got %q", stored.PickupDate)
		}
		if _, ok := items[1].Put.Item["customer_approval_token"]; ok {
			t.Fatalf("empty token must not be written to the sparse index")
		}
	})

	t.Run("lock condition failure means slot taken", func(t *testing.T) {
		fake := &fakeDynamo{transactEr: cancelledAt(0)}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		_, err := repo.CreateWithSlot(context.Background(), sampleBooking(entities.BookingStatusScheduled))
		if !errors.Is(err, interfaces.ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable, got %v", err)
		}
	})

	t.Run("booking id collision is a plain error", func(t *testing.T) {
		fake := &fakeDynamo{transactEr: cancelledAt(1)}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		_, err := repo.CreateWithSlot(context.Background(), sampleBooking(entities.BookingStatusScheduled))
		if err == nil || errors.Is(err, interfaces.ErrSlotUnavailable) {
			t.Fatalf("expected non-slot error, got %v", err)
		}
	})
}

func TestBookingDynamoRepository_UpdateStatus(t *testing.T) {
	stored, err := attributevalue.MarshalMap(toBookingItem(sampleBooking(entities.BookingStatusScheduled)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	t.Run("cancel deletes the lock in the same transaction", func(t *testing.T) {
		fake := &fakeDynamo{getItem: stored}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		change := entities.NewStatusChange(entities.BookingStatusScheduled, entities.BookingStatusCancelled, testDay)
		if _, err := repo.UpdateStatus(context.Background(), "b-1", change); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		items := fake.transactIn.TransactItems
		if len(items) != 2 || items[0].Update == nil || items[1].Delete == nil {
			t.Fatalf("expected update + delete, got %+v", items)
		}
		key := items[1].Delete.Key["id"].(*types.AttributeValueMemberS).Value
		if key != "2025-03-03#08:00-10:00" {
			t.Fatalf("unexpected lock key %q", key)
		}
	})

	t.Run("stale status returns zero booking", func(t *testing.T) {
		fake := &fakeDynamo{getItem: stored, transactEr: cancelledAt(0)}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		change := entities.NewStatusChange(entities.BookingStatusScheduled, entities.BookingStatusCancelled, testDay)
		got, err := repo.UpdateStatus(context.Background(), "b-1", change)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero booking, got %+v err=%v", got, err)
		}
	})

	t.Run("completion keeps the lock and records note", func(t *testing.T) {
		fake := &fakeDynamo{updateOut: stored}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		change := entities.NewStatusChange(entities.BookingStatusInProgress, entities.BookingStatusCompleted, testDay)
		change.Note = "all gone"
		if _, err := repo.UpdateStatus(context.Background(), "b-1", change); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.transactIn != nil {
			t.Fatalf("completion must not touch the lock table")
		}
		expr := aws.ToString(fake.updateIn.UpdateExpression)
		if !strings.Contains(expr, "#completed_at = :at") || !strings.Contains(expr, "#note = :note") {
			t.Fatalf("unexpected update expression %q", expr)
		}
	})

	t.Run("conditional failure returns zero booking", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("no")}}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		change := entities.NewStatusChange(entities.BookingStatusScheduled, entities.BookingStatusInProgress, testDay)
		got, err := repo.UpdateStatus(context.Background(), "b-1", change)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero booking, got %+v err=%v", got, err)
		}
	})
}

func TestBookingDynamoRepository_GetByApprovalToken(t *testing.T) {
	pending := sampleBooking(entities.BookingStatusPendingCustomerApproval)
	pending.CustomerApprovalToken = "tok"
	indexed, _ := attributevalue.MarshalMap(toBookingItem(pending))

	t.Run("re-reads the base item", func(t *testing.T) {
		consumed := pending
		consumed.CustomerApprovalToken = ""
		base, _ := attributevalue.MarshalMap(toBookingItem(consumed))
		fake := &fakeDynamo{
			queryOut: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{indexed}}},
			getItem:  base,
		}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")

		got, err := repo.GetByApprovalToken(context.Background(), "tok")
		if err != nil || got.ID != "" {
			t.Fatalf("expected stale index hit to be ignored, got %+v err=%v", got, err)
		}
		if aws.ToString(fake.queryIns[0].IndexName) != bookingsApprovalTokenIndex {
			t.Fatalf("unexpected index %s", aws.ToString(fake.queryIns[0].IndexName))
		}
	})

	t.Run("empty token skips the query", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewBookingDynamoRepository(fake, "bookings", "slot_locks")
		if got, _ := repo.GetByApprovalToken(context.Background(), ""); got.ID != "" || len(fake.queryIns) != 0 {
			t.Fatalf("expected no lookup")
		}
	})
}

func TestQuoteDynamoRepository(t *testing.T) {
	t.Run("decision on a settled quote returns zero", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("no")}}
		repo := NewQuoteDynamoRepository(fake, "quotes")

		got, err := repo.RecordDecision(context.Background(), "q-1", entities.ApprovalDecision{
			Status:     entities.ApprovalStatusRejected,
			ApprovedBy: "admin",
			ApprovedAt: testDay,
		})
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero quote, got %+v err=%v", got, err)
		}
		if !strings.Contains(aws.ToString(fake.updateIn.UpdateExpression), "REMOVE #price") {
			t.Fatalf("rejection must clear approved_price: %s", aws.ToString(fake.updateIn.UpdateExpression))
		}
	})

	t.Run("decision stores price as text", func(t *testing.T) {
		level := 12
		price := decimal.RequireFromString("267.50")
		stored, _ := attributevalue.MarshalMap(toQuoteItem(entities.Quote{
			ID:             "q-1",
			TotalPrice:     decimal.RequireFromString("267.5"),
			ScaleLevel:     &level,
			ApprovalStatus: entities.ApprovalStatusApproved,
			ApprovedPrice:  &price,
		}))
		fake := &fakeDynamo{updateOut: stored}
		repo := NewQuoteDynamoRepository(fake, "quotes")

		got, err := repo.RecordDecision(context.Background(), "q-1", entities.ApprovalDecision{
			Status:        entities.ApprovalStatusApproved,
			ApprovedPrice: &price,
			ApprovedAt:    testDay,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ApprovedPrice == nil || !got.ApprovedPrice.Equal(price) || *got.ScaleLevel != 12 {
			t.Fatalf("unexpected quote: %+v", got)
		}
		v := fake.updateIn.ExpressionAttributeValues[":price"].(*types.AttributeValueMemberS).Value
		if v != "267.5" {
			t.Fatalf("unexpected stored price %q", v)
		}
	})

	t.Run("counts follow pagination", func(t *testing.T) {
		fake := &fakeDynamo{queryOut: []*dynamodb.QueryOutput{
			{Count: 2},
			{Count: 3, LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "x"}}},
			{Count: 1},
		}}
		repo := NewQuoteDynamoRepository(fake, "quotes")

		counts, err := repo.CountByApprovalStatus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if counts[entities.ApprovalStatusAutoApproved] != 2 || counts[entities.ApprovalStatusPending] != 4 {
			t.Fatalf("unexpected counts: %+v", counts)
		}
		if fake.queryIns[0].Select != types.SelectCount {
			t.Fatalf("expected COUNT select")
		}
	})
}

func TestPaymentDynamoRepository_UpdateProviderStatus(t *testing.T) {
	t.Run("missing payment returns zero", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("no")}}
		repo := NewPaymentDynamoRepository(fake, "payments")

		got, err := repo.UpdateProviderStatus(context.Background(), "missing", interfaces.PaymentUpdate{Status: entities.PaymentStatusPaid})
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero payment, got %+v err=%v", got, err)
		}
	})

	t.Run("payload is written only when present", func(t *testing.T) {
		stored, _ := attributevalue.MarshalMap(toPaymentItem(entities.PaymentTransaction{ID: "p-1", Status: entities.PaymentStatusPaid}))
		fake := &fakeDynamo{updateOut: stored}
		repo := NewPaymentDynamoRepository(fake, "payments")

		got, err := repo.UpdateProviderStatus(context.Background(), "p-1", interfaces.PaymentUpdate{
			Status:          entities.PaymentStatusPaid,
			ProviderStatus:  "approved",
			ProviderPayload: []byte(`{"id":1}`),
		})
		if err != nil || got.ID != "p-1" {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
		if _, ok := fake.updateIn.ExpressionAttributeValues[":payload"]; !ok {
			t.Fatalf("expected payload to be written")
		}
	})
}
