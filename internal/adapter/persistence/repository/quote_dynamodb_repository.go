package repository

import (
	"context"

	"github.com/Lee196444/Text2toss-app/internal/domain/entities"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const quotesApprovalStatusIndex = "approval_status-index"

type quoteLineItem struct {
	Name        string `dynamodbav:"name"`
	Quantity    int    `dynamodbav:"quantity"`
	Size        string `dynamodbav:"size"`
	Description string `dynamodbav:"description,omitempty"`
}

type quoteItem struct {
	ID                string          `dynamodbav:"id"`
	Items             []quoteLineItem `dynamodbav:"items"`
	TotalPrice        string          `dynamodbav:"total_price"`
	ScaleLevel        *int            `dynamodbav:"scale_level,omitempty"`
	Description       string          `dynamodbav:"description,omitempty"`
	Explanation       string          `dynamodbav:"explanation,omitempty"`
	BasePrice         string          `dynamodbav:"base_price"`
	VolumeAssessment  string          `dynamodbav:"volume_assessment,omitempty"`
	AdditionalCharges string          `dynamodbav:"additional_charges"`
	Total             string          `dynamodbav:"total"`
	Source            string          `dynamodbav:"source"`
	ApprovalStatus    string          `dynamodbav:"approval_status"`
	RequiresApproval  bool            `dynamodbav:"requires_approval"`
	AdminNotes        string          `dynamodbav:"admin_notes,omitempty"`
	ApprovedPrice     string          `dynamodbav:"approved_price,omitempty"`
	ApprovedBy        string          `dynamodbav:"approved_by,omitempty"`
	ApprovedAt        string          `dynamodbav:"approved_at,omitempty"`
	CreatedAt         string          `dynamodbav:"created_at"`
	UpdatedAt         string          `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: approval_status-index (PK: approval_status, SK: created_at)
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByApprovalStatus(ctx context.Context, status entities.ApprovalStatus) ([]entities.Quote, error) {
	var quotes []entities.Quote
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, r.statusQuery(status, types.SelectAllAttributes, startKey))
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			quotes = append(quotes, fromQuoteItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	if quotes == nil {
		quotes = []entities.Quote{}
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) CountByApprovalStatus(ctx context.Context) (map[entities.ApprovalStatus]int, error) {
	counts := make(map[entities.ApprovalStatus]int)
	statuses := []entities.ApprovalStatus{
		entities.ApprovalStatusAutoApproved,
		entities.ApprovalStatusPending,
		entities.ApprovalStatusApproved,
		entities.ApprovalStatusRejected,
	}
	for _, status := range statuses {
		var startKey map[string]types.AttributeValue
		for {
			out, err := r.ddb.Query(ctx, r.statusQuery(status, types.SelectCount, startKey))
			if err != nil {
				return nil, err
			}
			counts[status] += int(out.Count)
			if len(out.LastEvaluatedKey) == 0 {
				break
			}
			startKey = out.LastEvaluatedKey
		}
	}
	return counts, nil
}

func (r *QuoteDynamoRepository) statusQuery(status entities.ApprovalStatus, sel types.Select, startKey map[string]types.AttributeValue) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(quotesApprovalStatusIndex),
		KeyConditionExpression:   aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{"#status": "approval_status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		Select:            sel,
		ExclusiveStartKey: startKey,
	}
}

// RecordDecision applies the decision only while the quote is still pending;
// otherwise it returns a zero Quote.
func (r *QuoteDynamoRepository) RecordDecision(ctx context.Context, id string, d entities.ApprovalDecision) (entities.Quote, error) {
	expr := "SET #status = :status, #notes = :notes, #by = :by, #at = :at, #updated_at = :at"
	values := map[string]types.AttributeValue{
		":status":  &types.AttributeValueMemberS{Value: string(d.Status)},
		":notes":   &types.AttributeValueMemberS{Value: d.AdminNotes},
		":by":      &types.AttributeValueMemberS{Value: d.ApprovedBy},
		":at":      &types.AttributeValueMemberS{Value: formatTime(d.ApprovedAt)},
		":pending": &types.AttributeValueMemberS{Value: string(entities.ApprovalStatusPending)},
	}
	names := map[string]string{
		"#status":     "approval_status",
		"#notes":      "admin_notes",
		"#by":         "approved_by",
		"#at":         "approved_at",
		"#updated_at": "updated_at",
		"#price":      "approved_price",
	}
	if d.ApprovedPrice != nil {
		expr += ", #price = :price"
		values[":price"] = &types.AttributeValueMemberS{Value: d.ApprovedPrice.String()}
	} else {
		expr += " REMOVE #price"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	lines := make([]quoteLineItem, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, quoteLineItem{Name: it.Name, Quantity: it.Quantity, Size: string(it.Size), Description: it.Description})
	}
	return quoteItem{
		ID:                q.ID,
		Items:             lines,
		TotalPrice:        q.TotalPrice.String(),
		ScaleLevel:        q.ScaleLevel,
		Description:       q.Description,
		Explanation:       q.Explanation,
		BasePrice:         q.Breakdown.BasePrice.String(),
		VolumeAssessment:  q.Breakdown.VolumeAssessment,
		AdditionalCharges: q.Breakdown.AdditionalCharges.String(),
		Total:             q.Breakdown.Total.String(),
		Source:            string(q.Source),
		ApprovalStatus:    string(q.ApprovalStatus),
		RequiresApproval:  q.RequiresApproval,
		AdminNotes:        q.AdminNotes,
		ApprovedPrice:     formatDecimalPtr(q.ApprovedPrice),
		ApprovedBy:        q.ApprovedBy,
		ApprovedAt:        formatTimePtr(q.ApprovedAt),
		CreatedAt:         formatTime(q.CreatedAt),
		UpdatedAt:         formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	items := make([]entities.Item, 0, len(it.Items))
	for _, l := range it.Items {
		items = append(items, entities.Item{Name: l.Name, Quantity: l.Quantity, Size: entities.ItemSize(l.Size), Description: l.Description})
	}
	return entities.Quote{
		ID:          it.ID,
		Items:       items,
		TotalPrice:  parseDecimal(it.TotalPrice),
		ScaleLevel:  it.ScaleLevel,
		Description: it.Description,
		Explanation: it.Explanation,
		Breakdown: entities.PriceBreakdown{
			BasePrice:         parseDecimal(it.BasePrice),
			VolumeAssessment:  it.VolumeAssessment,
			AdditionalCharges: parseDecimal(it.AdditionalCharges),
			Total:             parseDecimal(it.Total),
		},
		Source:           entities.QuoteSource(it.Source),
		ApprovalStatus:   entities.ApprovalStatus(it.ApprovalStatus),
		RequiresApproval: it.RequiresApproval,
		AdminNotes:       it.AdminNotes,
		ApprovedPrice:    parseDecimalPtr(it.ApprovedPrice),
		ApprovedBy:       it.ApprovedBy,
		ApprovedAt:       parseTimePtr(it.ApprovedAt),
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}
