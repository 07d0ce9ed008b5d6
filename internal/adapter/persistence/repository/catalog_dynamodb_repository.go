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

const (
	defaultSellersTableName  = "sellers"
	defaultProductsTableName = "products"
	sellersMatriculaIndex    = "matricula-index"
	sellersVitrineIndex      = "vitrine-index"
)

type sellerRecord struct {
	UserID      string `dynamodbav:"user_id"`
	Matricula   string `dynamodbav:"matricula"`
	VitrineSlug string `dynamodbav:"vitrine_slug,omitempty"`
	DisplayName string `dynamodbav:"display_name"`
	Phone       string `dynamodbav:"phone,omitempty"`
	Email       string `dynamodbav:"email,omitempty"`
}

// SellerDynamoRepository resolves sellers from public storefront identifiers.
//
// Table requirements:
//   - PK: user_id (string)
//   - GSI: matricula-index (PK: matricula)
//   - GSI: vitrine-index (PK: vitrine_slug)

type SellerDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISellerDirectory = (*SellerDynamoRepository)(nil)

func NewSellerDynamoRepository(ddb *dynamodb.Client) *SellerDynamoRepository {
	return &SellerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SELLERS_TABLE", defaultSellersTableName),
	}
}

// ResolveByPublicID tries the matricula index first, then the vitrine slug.
// Customers share both kinds of link and the caller cannot tell them apart.
func (r *SellerDynamoRepository) ResolveByPublicID(ctx context.Context, publicID string) (entities.Seller, error) {
	seller, err := r.queryIndex(ctx, sellersMatriculaIndex, "matricula", publicID)
	if err != nil {
		return entities.Seller{}, err
	}
	if seller.UserID != "" {
		return seller, nil
	}
	return r.queryIndex(ctx, sellersVitrineIndex, "vitrine_slug", publicID)
}

func (r *SellerDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) (entities.Seller, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Seller{}, err
	}
	if len(out.Items) == 0 {
		return entities.Seller{}, nil
	}

	var it sellerRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Seller{}, err
	}
	return entities.Seller{
		UserID:      it.UserID,
		Matricula:   it.Matricula,
		VitrineSlug: it.VitrineSlug,
		DisplayName: it.DisplayName,
		Phone:       it.Phone,
		Email:       it.Email,
	}, nil
}

type productRecord struct {
	ID              string `dynamodbav:"id"`
	Name            string `dynamodbav:"name"`
	DeliveryType    string `dynamodbav:"delivery_type,omitempty"`
	DeliveryContent string `dynamodbav:"delivery_content,omitempty"`
	DeliveryFileURL string `dynamodbav:"delivery_file_url,omitempty"`
}

// ProductDynamoRepository exposes product delivery metadata.
//
// Table requirements:
//   - PK: id (string)

type ProductDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductCatalog = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb *dynamodb.Client) *ProductDynamoRepository {
	return &ProductDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

func (r *ProductDynamoRepository) GetDeliveryInfo(ctx context.Context, productID string) (entities.ProductDeliveryInfo, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return entities.ProductDeliveryInfo{}, err
	}
	if len(out.Item) == 0 {
		return entities.ProductDeliveryInfo{}, nil
	}

	var it productRecord
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ProductDeliveryInfo{}, err
	}
	return entities.ProductDeliveryInfo{
		ProductID:       it.ID,
		Name:            it.Name,
		DeliveryType:    entities.DeliveryType(it.DeliveryType),
		DeliveryContent: it.DeliveryContent,
		DeliveryFileURL: it.DeliveryFileURL,
	}, nil
}
