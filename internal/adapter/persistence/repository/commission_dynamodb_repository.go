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
	defaultCommissionsTableName = "platform_commissions"
	commissionsSaleIDIndex      = "sale_id-index"
)

type commissionRecord struct {
	ID         string  `dynamodbav:"id"`
	SaleID     string  `dynamodbav:"sale_id"`
	Amount     float64 `dynamodbav:"amount"`
	Percentage float64 `dynamodbav:"percentage"`
	CreatedAt  string  `dynamodbav:"created_at"`
}

// PlatformCommissionDynamoRepository persists the append-only commission ledger.
//
// Table requirements:
//   - PK: id (string, uuid)
//   - GSI: sale_id-index (PK: sale_id)

type PlatformCommissionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPlatformCommissionRepository = (*PlatformCommissionDynamoRepository)(nil)

func NewPlatformCommissionDynamoRepository(ddb *dynamodb.Client) *PlatformCommissionDynamoRepository {
	return &PlatformCommissionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COMMISSIONS_TABLE", defaultCommissionsTableName),
	}
}

func (r *PlatformCommissionDynamoRepository) Create(ctx context.Context, c entities.PlatformCommission) (entities.PlatformCommission, error) {
	it := commissionRecord{
		ID:         c.ID,
		SaleID:     c.SaleID,
		Amount:     c.Amount,
		Percentage: c.Percentage,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PlatformCommission{}, err
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
		return entities.PlatformCommission{}, err
	}
	return c, nil
}

func (r *PlatformCommissionDynamoRepository) ListBySaleID(ctx context.Context, saleID string) ([]entities.PlatformCommission, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(commissionsSaleIDIndex),
		KeyConditionExpression: aws.String("sale_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: saleID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PlatformCommission, 0, len(out.Items))
	for _, raw := range out.Items {
		var it commissionRecord
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
		items = append(items, entities.PlatformCommission{
			ID:         it.ID,
			SaleID:     it.SaleID,
			Amount:     it.Amount,
			Percentage: it.Percentage,
			CreatedAt:  createdAt,
		})
	}
	return items, nil
}
