package repository

import (
	"context"
	"sort"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const paymentsBookingIDIndex = "booking_id-index"

type paymentItem struct {
	ID                 string `dynamodbav:"id"`
	QuoteID            string `dynamodbav:"quote_id"`
	BookingID          string `dynamodbav:"booking_id"`
	Amount             string `dynamodbav:"amount"`
	Currency           string `dynamodbav:"currency"`
	Status             string `dynamodbav:"status"`
	CheckoutURL        string `dynamodbav:"checkout_url"`
	PreferenceID       string `dynamodbav:"preference_id,omitempty"`
	ProviderPaymentID  string `dynamodbav:"provider_payment_id,omitempty"`
	ProviderStatus     string `dynamodbav:"provider_status,omitempty"`
	ProviderPayloadRaw string `dynamodbav:"provider_payload_raw,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists PaymentTransaction entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: booking_id-index (PK: booking_id)
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.PaymentTransaction) (entities.PaymentTransaction, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.PaymentTransaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentTransaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentTransaction{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByBookingID(ctx context.Context, bookingID string) ([]entities.PaymentTransaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsBookingIDIndex),
		KeyConditionExpression: aws.String("booking_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: bookingID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentTransaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

// UpdateProviderStatus returns a zero PaymentTransaction when the id does not exist.
func (r *PaymentDynamoRepository) UpdateProviderStatus(ctx context.Context, id string, update interfaces.PaymentUpdate) (entities.PaymentTransaction, error) {
	expr := "SET #status = :status, #pid = :pid, #pstatus = :pstatus, #updated_at = :now"
	values := map[string]types.AttributeValue{
		":status":  &types.AttributeValueMemberS{Value: string(update.Status)},
		":pid":     &types.AttributeValueMemberS{Value: update.ProviderPaymentID},
		":pstatus": &types.AttributeValueMemberS{Value: update.ProviderStatus},
		":now":     &types.AttributeValueMemberS{Value: formatTime(time.Now())},
	}
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#pid":        "provider_payment_id",
		"#pstatus":    "provider_status",
		"#updated_at": "updated_at",
	}
	if len(update.ProviderPayload) > 0 {
		expr += ", #payload = :payload"
		names["#payload"] = "provider_payload_raw"
		values[":payload"] = &types.AttributeValueMemberS{Value: string(update.ProviderPayload)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.PaymentTransaction{}, nil
		}
		return entities.PaymentTransaction{}, err
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.PaymentTransaction) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		QuoteID:            p.QuoteID,
		BookingID:          p.BookingID,
		Amount:             p.Amount.String(),
		Currency:           p.Currency,
		Status:             string(p.Status),
		CheckoutURL:        p.CheckoutURL,
		PreferenceID:       p.PreferenceID,
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderStatus:     p.ProviderStatus,
		ProviderPayloadRaw: string(p.ProviderPayload),
		CreatedAt:          formatTime(p.CreatedAt),
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.PaymentTransaction {
	p := entities.PaymentTransaction{
		ID:                it.ID,
		QuoteID:           it.QuoteID,
		BookingID:         it.BookingID,
		Amount:            parseDecimal(it.Amount),
		Currency:          it.Currency,
		Status:            entities.PaymentStatus(it.Status),
		CheckoutURL:       it.CheckoutURL,
		PreferenceID:      it.PreferenceID,
		ProviderPaymentID: it.ProviderPaymentID,
		ProviderStatus:    it.ProviderStatus,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayload = []byte(it.ProviderPayloadRaw)
	}
	return p
}
