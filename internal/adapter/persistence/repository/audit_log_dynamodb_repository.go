package repository

import (
	"context"
	"time"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentLogsTableName   = "payment_logs"
	defaultAntifraudLogsTableName = "antifraud_logs"
	paymentLogsPaymentIDIndex     = "payment_id-index"
)

type paymentLogRecord struct {
	ID         string `dynamodbav:"id"`
	PaymentID  string `dynamodbav:"payment_id"`
	SaleID     string `dynamodbav:"sale_id,omitempty"`
	EventType  string `dynamodbav:"event_type"`
	PayloadRaw string `dynamodbav:"payload_raw,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// PaymentLogDynamoRepository persists the append-only payment audit trail.
//
// Table requirements:
//   - PK: id (string, uuid)
//   - GSI: payment_id-index (PK: payment_id)

type PaymentLogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentLogRepository = (*PaymentLogDynamoRepository)(nil)

func NewPaymentLogDynamoRepository(ddb *dynamodb.Client) *PaymentLogDynamoRepository {
	return &PaymentLogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENT_LOGS_TABLE", defaultPaymentLogsTableName),
	}
}

func (r *PaymentLogDynamoRepository) Append(ctx context.Context, l entities.PaymentLog) error {
	it := paymentLogRecord{
		ID:         l.ID,
		PaymentID:  l.PaymentID,
		SaleID:     l.SaleID,
		EventType:  l.EventType,
		PayloadRaw: string(l.PayloadRaw),
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *PaymentLogDynamoRepository) ListByPaymentID(ctx context.Context, paymentID string) ([]entities.PaymentLog, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentLogsPaymentIDIndex),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentLog, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentLogRecord
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
		items = append(items, entities.PaymentLog{
			ID:         it.ID,
			PaymentID:  it.PaymentID,
			SaleID:     it.SaleID,
			EventType:  it.EventType,
			PayloadRaw: []byte(it.PayloadRaw),
			CreatedAt:  createdAt,
		})
	}
	return items, nil
}

type antifraudLogRecord struct {
	ID        string `dynamodbav:"id"`
	PaymentID string `dynamodbav:"payment_id"`
	Reason    string `dynamodbav:"reason"`
	Detail    string `dynamodbav:"detail,omitempty"`
	IsBlocked bool   `dynamodbav:"is_blocked"`
	CreatedAt string `dynamodbav:"created_at"`
}

// AntifraudLogDynamoRepository persists antifraud records.
//
// Table requirements:
//   - PK: id (string, uuid)

type AntifraudLogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAntifraudLogRepository = (*AntifraudLogDynamoRepository)(nil)

func NewAntifraudLogDynamoRepository(ddb *dynamodb.Client) *AntifraudLogDynamoRepository {
	return &AntifraudLogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ANTIFRAUD_LOGS_TABLE", defaultAntifraudLogsTableName),
	}
}

func (r *AntifraudLogDynamoRepository) Append(ctx context.Context, l entities.AntifraudLog) error {
	it := antifraudLogRecord{
		ID:        l.ID,
		PaymentID: l.PaymentID,
		Reason:    l.Reason,
		Detail:    l.Detail,
		IsBlocked: l.IsBlocked,
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
