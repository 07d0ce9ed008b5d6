package repository

import (
	"context"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSellerBalancesTableName = "seller_balances"

type sellerBalanceRecord struct {
	SellerID         string  `dynamodbav:"seller_id"`
	AvailableBalance float64 `dynamodbav:"available_balance"`
	PendingBalance   float64 `dynamodbav:"pending_balance"`
	TotalEarned      float64 `dynamodbav:"total_earned"`
	TotalWithdrawn   float64 `dynamodbav:"total_withdrawn"`
}

// SellerBalanceDynamoRepository persists per-seller ledger rows.
//
// Table requirements:
//   - PK: seller_id (string)
//
// Credit relies on DynamoDB ADD semantics: a single atomic update that
// creates a missing row at zero and increments it in the same write, so
// concurrent approvals cannot lose an increment.

type SellerBalanceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISellerBalanceRepository = (*SellerBalanceDynamoRepository)(nil)

func NewSellerBalanceDynamoRepository(ddb *dynamodb.Client) *SellerBalanceDynamoRepository {
	return &SellerBalanceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SELLER_BALANCES_TABLE", defaultSellerBalancesTableName),
	}
}

func (r *SellerBalanceDynamoRepository) Get(ctx context.Context, sellerID string) (entities.SellerBalance, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"seller_id": &types.AttributeValueMemberS{Value: sellerID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.SellerBalance{}, err
	}
	if len(out.Item) == 0 {
		return entities.SellerBalance{}, nil
	}

	var it sellerBalanceRecord
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.SellerBalance{}, err
	}
	return fromSellerBalanceRecord(it), nil
}

func (r *SellerBalanceDynamoRepository) Credit(ctx context.Context, sellerID string, amount float64) (entities.SellerBalance, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"seller_id": &types.AttributeValueMemberS{Value: sellerID},
		},
		UpdateExpression: aws.String("ADD #available :amount, #earned :amount"),
		ExpressionAttributeNames: map[string]string{
			"#available": "available_balance",
			"#earned":    "total_earned",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": &types.AttributeValueMemberN{Value: floatToString(amount)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.SellerBalance{}, err
	}

	var it sellerBalanceRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.SellerBalance{}, err
	}
	it.SellerID = sellerID
	return fromSellerBalanceRecord(it), nil
}

func fromSellerBalanceRecord(it sellerBalanceRecord) entities.SellerBalance {
	return entities.SellerBalance{
		SellerID:         it.SellerID,
		AvailableBalance: it.AvailableBalance,
		PendingBalance:   it.PendingBalance,
		TotalEarned:      it.TotalEarned,
		TotalWithdrawn:   it.TotalWithdrawn,
	}
}
