package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/domain/schedule"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	bookingsPickupDateIndex    = "pickup_date-index"
	bookingsQuoteIDIndex       = "quote_id-index"
	bookingsApprovalTokenIndex = "customer_approval_token-index"
)

type bookingItem struct {
	ID                  string `dynamodbav:"id"`
	QuoteID             string `dynamodbav:"quote_id"`
	PickupDate          string `dynamodbav:"pickup_date"`
	PickupTime          string `dynamodbav:"pickup_time"`
	Address             string `dynamodbav:"address"`
	Phone               string `dynamodbav:"phone"`
	SpecialInstructions string `dynamodbav:"special_instructions,omitempty"`
	Status              string `dynamodbav:"status"`

	RequiresCustomerApproval bool   `dynamodbav:"requires_customer_approval"`
	CustomerApprovalToken    string `dynamodbav:"customer_approval_token,omitempty"`
	OriginalPrice            string `dynamodbav:"original_price,omitempty"`
	AdjustedPrice            string `dynamodbav:"adjusted_price,omitempty"`
	PriceAdjustmentReason    string `dynamodbav:"price_adjustment_reason,omitempty"`
	CustomerNotes            string `dynamodbav:"customer_notes,omitempty"`
	CustomerRespondedAt      string `dynamodbav:"customer_responded_at,omitempty"`

	CompletionNote     string `dynamodbav:"completion_note,omitempty"`
	CompletionPhotoURL string `dynamodbav:"completion_photo_url,omitempty"`
	CompletedAt        string `dynamodbav:"completed_at,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

type slotLockItem struct {
	ID        string `dynamodbav:"id"`
	BookingID string `dynamodbav:"booking_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// BookingDynamoRepository persists bookings in DynamoDB.
//
// Slot claims are items in a separate lock table keyed by "<date>#<slot>". A booking
// and its claim are written in the same transaction, and every transition that frees
// the slot deletes the claim in the same transaction as the status change.
type BookingDynamoRepository struct {
	ddb        DynamoAPI
	tableName  string
	locksTable string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb DynamoAPI, tableName, locksTable string) *BookingDynamoRepository {
	return &BookingDynamoRepository{ddb: ddb, tableName: tableName, locksTable: locksTable}
}

func slotLockID(date time.Time, slot string) string {
	return schedule.FormatDate(date) + "#" + slot
}

func (r *BookingDynamoRepository) CreateWithSlot(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	lock, err := attributevalue.MarshalMap(slotLockItem{
		ID:        slotLockID(b.PickupDate, b.PickupTime),
		BookingID: b.ID,
		CreatedAt: formatTime(b.CreatedAt),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	item, err := attributevalue.MarshalMap(toBookingItem(b))
	if err != nil {
		return entities.Booking{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.locksTable),
				Item:                     lock,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     item,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if transactionConditionFailed(err, 0) {
			return entities.Booking{}, interfaces.ErrSlotUnavailable
		}
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}
	return unmarshalBooking(out.Item)
}

func (r *BookingDynamoRepository) GetByApprovalToken(ctx context.Context, token string) (entities.Booking, error) {
	if token == "" {
		return entities.Booking{}, nil
	}
	found, err := r.queryIndex(ctx, bookingsApprovalTokenIndex, "customer_approval_token", token)
	if err != nil {
		return entities.Booking{}, err
	}
	if len(found) == 0 {
		return entities.Booking{}, nil
	}
	// GSIs are eventually consistent; re-read the base item.
	b, err := r.GetByID(ctx, found[0].ID)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.CustomerApprovalToken != token {
		return entities.Booking{}, nil
	}
	return b, nil
}

func (r *BookingDynamoRepository) ListByDate(ctx context.Context, date time.Time) ([]entities.Booking, error) {
	return r.queryIndex(ctx, bookingsPickupDateIndex, "pickup_date", schedule.FormatDate(date))
}

func (r *BookingDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Booking, error) {
	return r.queryIndex(ctx, bookingsQuoteIDIndex, "quote_id", quoteID)
}

func (r *BookingDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.Booking, error) {
	bookings := []entities.Booking{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			IndexName:                aws.String(index),
			KeyConditionExpression:   aws.String("#k = :v"),
			ExpressionAttributeNames: map[string]string{"#k": attr},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: value},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			b, err := unmarshalBooking(raw)
			if err != nil {
				return nil, err
			}
			bookings = append(bookings, b)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return bookings, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *BookingDynamoRepository) BeginPriceApproval(ctx context.Context, id string, req entities.PriceApprovalRequest, at time.Time) (entities.Booking, error) {
	return r.update(ctx, id,
		"attribute_exists(#id) AND #status = :from",
		"SET #status = :to, #requires = :true, #token = :token, #original = :original, #adjusted = :adjusted, "+
			"#reason = :reason, #updated_at = :at REMOVE #notes, #responded_at",
		map[string]types.AttributeValue{
			":from":     &types.AttributeValueMemberS{Value: string(entities.BookingStatusScheduled)},
			":to":       &types.AttributeValueMemberS{Value: string(entities.BookingStatusPendingCustomerApproval)},
			":true":     &types.AttributeValueMemberBOOL{Value: true},
			":token":    &types.AttributeValueMemberS{Value: req.Token},
			":original": &types.AttributeValueMemberS{Value: req.OriginalPrice.String()},
			":adjusted": &types.AttributeValueMemberS{Value: req.AdjustedPrice.String()},
			":reason":   &types.AttributeValueMemberS{Value: req.Reason},
			":at":       &types.AttributeValueMemberS{Value: formatTime(at)},
		},
		map[string]string{
			"#status":       "status",
			"#requires":     "requires_customer_approval",
			"#token":        "customer_approval_token",
			"#original":     "original_price",
			"#adjusted":     "adjusted_price",
			"#reason":       "price_adjustment_reason",
			"#updated_at":   "updated_at",
			"#notes":        "customer_notes",
			"#responded_at": "customer_responded_at",
		},
	)
}

func (r *BookingDynamoRepository) ResolvePriceApproval(ctx context.Context, token string, d entities.CustomerDecision) (entities.Booking, error) {
	current, err := r.GetByApprovalToken(ctx, token)
	if err != nil || current.ID == "" {
		return entities.Booking{}, err
	}

	to := entities.BookingStatusScheduled
	if !d.Approved {
		to = entities.BookingStatusCancelled
	}
	cond := "attribute_exists(#id) AND #status = :from AND #token = :token"
	expr := "SET #status = :to, #requires = :false, #notes = :notes, #responded_at = :at, #updated_at = :at REMOVE #token"
	values := map[string]types.AttributeValue{
		":from":  &types.AttributeValueMemberS{Value: string(entities.BookingStatusPendingCustomerApproval)},
		":to":    &types.AttributeValueMemberS{Value: string(to)},
		":token": &types.AttributeValueMemberS{Value: token},
		":false": &types.AttributeValueMemberBOOL{Value: false},
		":notes": &types.AttributeValueMemberS{Value: d.Notes},
		":at":    &types.AttributeValueMemberS{Value: formatTime(d.RespondedAt)},
	}
	names := map[string]string{
		"#status":       "status",
		"#token":        "customer_approval_token",
		"#requires":     "requires_customer_approval",
		"#notes":        "customer_notes",
		"#responded_at": "customer_responded_at",
		"#updated_at":   "updated_at",
	}

	if d.Approved {
		return r.update(ctx, current.ID, cond, expr, values, names)
	}
	return r.updateReleasingSlot(ctx, current, cond, expr, values, names)
}

func (r *BookingDynamoRepository) UpdateStatus(ctx context.Context, id string, change entities.StatusChange) (entities.Booking, error) {
	sets := []string{"#status = :to", "#updated_at = :at"}
	var removes []string
	values := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: string(change.From)},
		":to":   &types.AttributeValueMemberS{Value: string(change.To)},
		":at":   &types.AttributeValueMemberS{Value: formatTime(change.At)},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}

	if change.To == entities.BookingStatusCompleted {
		sets = append(sets, "#completed_at = :at")
		names["#completed_at"] = "completed_at"
		if change.Note != "" {
			sets = append(sets, "#note = :note")
			names["#note"] = "completion_note"
			values[":note"] = &types.AttributeValueMemberS{Value: change.Note}
		}
		if change.PhotoURL != "" {
			sets = append(sets, "#photo = :photo")
			names["#photo"] = "completion_photo_url"
			values[":photo"] = &types.AttributeValueMemberS{Value: change.PhotoURL}
		}
	}
	if change.ClearApprovalToken {
		sets = append(sets, "#requires = :false")
		removes = append(removes, "#token")
		names["#requires"] = "requires_customer_approval"
		names["#token"] = "customer_approval_token"
		values[":false"] = &types.AttributeValueMemberBOOL{Value: false}
	}

	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}
	cond := "attribute_exists(#id) AND #status = :from"

	if !change.ReleaseSlot {
		return r.update(ctx, id, cond, expr, values, names)
	}
	current, err := r.GetByID(ctx, id)
	if err != nil || current.ID == "" {
		return entities.Booking{}, err
	}
	return r.updateReleasingSlot(ctx, current, cond, expr, values, names)
}

func (r *BookingDynamoRepository) update(ctx context.Context, id, cond, expr string, values map[string]types.AttributeValue, names map[string]string) (entities.Booking, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Booking{}, nil
	}
	return unmarshalBooking(out.Attributes)
}

// updateReleasingSlot applies the booking update and drops its slot claim together.
// The claim is only deleted while it still belongs to this booking.
func (r *BookingDynamoRepository) updateReleasingSlot(ctx context.Context, current entities.Booking, cond, expr string, values map[string]types.AttributeValue, names map[string]string) (entities.Booking, error) {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       stringKey("id", current.ID),
				ConditionExpression:       aws.String(cond),
				UpdateExpression:          aws.String(expr),
				ExpressionAttributeValues: values,
				ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
			}},
			{Delete: &types.Delete{
				TableName:                aws.String(r.locksTable),
				Key:                      stringKey("id", slotLockID(current.PickupDate, current.PickupTime)),
				ConditionExpression:      aws.String("attribute_not_exists(#id) OR #booking_id = :booking_id"),
				ExpressionAttributeNames: map[string]string{"#id": "id", "#booking_id": "booking_id"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":booking_id": &types.AttributeValueMemberS{Value: current.ID},
				},
			}},
		},
	})
	if err != nil {
		if transactionConditionFailed(err, 0) {
			return entities.Booking{}, nil
		}
		if isTransactionCanceled(err) {
			return entities.Booking{}, fmt.Errorf("release slot for booking %s: %w", current.ID, err)
		}
		return entities.Booking{}, err
	}
	return r.GetByID(ctx, current.ID)
}

func unmarshalBooking(raw map[string]types.AttributeValue) (entities.Booking, error) {
	var it bookingItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func toBookingItem(b entities.Booking) bookingItem {
	return bookingItem{
		ID:                       b.ID,
		QuoteID:                  b.QuoteID,
		PickupDate:               schedule.FormatDate(b.PickupDate),
		PickupTime:               b.PickupTime,
		Address:                  b.Address,
		Phone:                    b.Phone,
		SpecialInstructions:      b.SpecialInstructions,
		Status:                   string(b.Status),
		RequiresCustomerApproval: b.RequiresCustomerApproval,
		CustomerApprovalToken:    b.CustomerApprovalToken,
		OriginalPrice:            formatDecimalPtr(b.OriginalPrice),
		AdjustedPrice:            formatDecimalPtr(b.AdjustedPrice),
		PriceAdjustmentReason:    b.PriceAdjustmentReason,
		CustomerNotes:            b.CustomerNotes,
		CustomerRespondedAt:      formatTimePtr(b.CustomerRespondedAt),
		CompletionNote:           b.CompletionNote,
		CompletionPhotoURL:       b.CompletionPhotoURL,
		CompletedAt:              formatTimePtr(b.CompletedAt),
		CreatedAt:                formatTime(b.CreatedAt),
		UpdatedAt:                formatTime(b.UpdatedAt),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	date, _ := schedule.ParseDate(it.PickupDate)
	return entities.Booking{
		ID:                       it.ID,
		QuoteID:                  it.QuoteID,
		PickupDate:               date,
		PickupTime:               it.PickupTime,
		Address:                  it.Address,
		Phone:                    it.Phone,
		SpecialInstructions:      it.SpecialInstructions,
		Status:                   entities.BookingStatus(it.Status),
		RequiresCustomerApproval: it.RequiresCustomerApproval,
		CustomerApprovalToken:    it.CustomerApprovalToken,
		OriginalPrice:            parseDecimalPtr(it.OriginalPrice),
		AdjustedPrice:            parseDecimalPtr(it.AdjustedPrice),
		PriceAdjustmentReason:    it.PriceAdjustmentReason,
		CustomerNotes:            it.CustomerNotes,
		CustomerRespondedAt:      parseTimePtr(it.CustomerRespondedAt),
		CompletionNote:           it.CompletionNote,
		CompletionPhotoURL:       it.CompletionPhotoURL,
		CompletedAt:              parseTimePtr(it.CompletedAt),
		CreatedAt:                parseTime(it.CreatedAt),
		UpdatedAt:                parseTime(it.UpdatedAt),
	}
}
