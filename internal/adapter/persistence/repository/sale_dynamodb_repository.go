package repository

import (
	"context"
	"errors"
	"time"

	"isa_platform/internal/domain/entities"
	"isa_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSalesTableName = "sales"
	salesMPPaymentIndex   = "mp_payment_id-index"
)

type saleItemRecord struct {
	ProductID string  `dynamodbav:"product_id"`
	Name      string  `dynamodbav:"name"`
	Quantity  int     `dynamodbav:"quantity"`
	UnitPrice float64 `dynamodbav:"unit_price"`
}

type saleRecord struct {
	ID            string           `dynamodbav:"id"`
	SellerID      string           `dynamodbav:"seller_id"`
	CustomerPhone string           `dynamodbav:"customer_phone"`
	CustomerName  string           `dynamodbav:"customer_name,omitempty"`
	CustomerEmail string           `dynamodbav:"customer_email,omitempty"`
	Items         []saleItemRecord `dynamodbav:"items"`

	Subtotal     float64 `dynamodbav:"subtotal"`
	PlatformFee  float64 `dynamodbav:"platform_fee"`
	SellerAmount float64 `dynamodbav:"seller_amount"`
	Total        float64 `dynamodbav:"total"`

	Status        string `dynamodbav:"status"`
	PaymentMethod string `dynamodbav:"payment_method"`
	PaymentStatus string `dynamodbav:"payment_status"`

	MPPaymentID    string `dynamodbav:"mp_payment_id,omitempty"`
	MPPreferenceID string `dynamodbav:"mp_preference_id,omitempty"`

	PixQRCode       string `dynamodbav:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string `dynamodbav:"pix_qr_code_base64,omitempty"`
	PixCopyPaste    string `dynamodbav:"pix_copy_paste,omitempty"`
	CheckoutURL     string `dynamodbav:"checkout_url,omitempty"`
	BoletoURL       string `dynamodbav:"boleto_url,omitempty"`
	BoletoBarcode   string `dynamodbav:"boleto_barcode,omitempty"`

	DeliveryStatus string `dynamodbav:"delivery_status,omitempty"`

	CreatedAt      string `dynamodbav:"created_at"`
	ExpiresAt      string `dynamodbav:"expires_at"`
	PaidAt         string `dynamodbav:"paid_at,omitempty"`
	DeliverySentAt string `dynamodbav:"delivery_sent_at,omitempty"`
}

// SaleDynamoRepository persists Sale entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, caller-generated UUID)
//   - GSI: mp_payment_id-index (PK: mp_payment_id)

type SaleDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISaleRepository = (*SaleDynamoRepository)(nil)

func NewSaleDynamoRepository(ddb *dynamodb.Client) *SaleDynamoRepository {
	return &SaleDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SALES_TABLE", defaultSalesTableName),
	}
}

func (r *SaleDynamoRepository) Create(ctx context.Context, s entities.Sale) (entities.Sale, error) {
	it := toSaleRecord(s)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Sale{}, err
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
		return entities.Sale{}, err
	}
	return s, nil
}

func (r *SaleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Sale, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Sale{}, err
	}
	if len(out.Item) == 0 {
		return entities.Sale{}, nil
	}

	var it saleRecord
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Sale{}, err
	}
	return fromSaleRecord(it), nil
}

func (r *SaleDynamoRepository) GetByMPPaymentID(ctx context.Context, mpPaymentID string) (entities.Sale, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(salesMPPaymentIndex),
		KeyConditionExpression: aws.String("mp_payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: mpPaymentID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Sale{}, err
	}
	if len(out.Items) == 0 {
		return entities.Sale{}, nil
	}

	var it saleRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Sale{}, err
	}
	return fromSaleRecord(it), nil
}

func (r *SaleDynamoRepository) Update(ctx context.Context, id string, upd interfaces.SaleUpdate) (entities.Sale, error) {
	expr := "SET "
	values := map[string]types.AttributeValue{}
	names := map[string]string{"#id": "id"}

	set := func(name, attr string, v types.AttributeValue) {
		if len(values) > 0 {
			expr += ", "
		}
		expr += name + " = :" + attr
		names[name] = attr
		values[":"+attr] = v
	}
	setString := func(attr string, v *string) {
		if v != nil {
			set("#"+attr, attr, &types.AttributeValueMemberS{Value: *v})
		}
	}

	if upd.Status != nil {
		set("#status", "status", &types.AttributeValueMemberS{Value: string(*upd.Status)})
	}
	if upd.PaymentStatus != nil {
		set("#payment_status", "payment_status", &types.AttributeValueMemberS{Value: string(*upd.PaymentStatus)})
	}
	if upd.DeliveryStatus != nil {
		set("#delivery_status", "delivery_status", &types.AttributeValueMemberS{Value: string(*upd.DeliveryStatus)})
	}
	setString("mp_payment_id", upd.MPPaymentID)
	setString("mp_preference_id", upd.MPPreferenceID)
	setString("pix_qr_code", upd.PixQRCode)
	setString("pix_qr_code_base64", upd.PixQRCodeBase64)
	setString("pix_copy_paste", upd.PixCopyPaste)
	setString("checkout_url", upd.CheckoutURL)
	setString("boleto_url", upd.BoletoURL)
	setString("boleto_barcode", upd.BoletoBarcode)
	if upd.PaidAt != nil {
		set("#paid_at", "paid_at", &types.AttributeValueMemberS{Value: upd.PaidAt.UTC().Format(time.RFC3339Nano)})
	}
	if upd.DeliverySentAt != nil {
		set("#delivery_sent_at", "delivery_sent_at", &types.AttributeValueMemberS{Value: upd.DeliverySentAt.UTC().Format(time.RFC3339Nano)})
	}

	if len(values) == 0 {
		return r.GetByID(ctx, id)
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Sale{}, nil
		}
		return entities.Sale{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Sale{}, nil
	}
	var it saleRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Sale{}, err
	}
	return fromSaleRecord(it), nil
}

func (r *SaleDynamoRepository) ClaimApproval(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #payment_status <> :approved"),
		UpdateExpression:    aws.String("SET #status = :completed, #payment_status = :approved, #paid_at = :paid_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#status":         "status",
			"#payment_status": "payment_status",
			"#paid_at":        "paid_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(entities.SaleStatusCompleted)},
			":approved":  &types.AttributeValueMemberS{Value: string(entities.PaymentStatusApproved)},
			":paid_at":   &types.AttributeValueMemberS{Value: paidAt.UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toSaleRecord(s entities.Sale) saleRecord {
	items := make([]saleItemRecord, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, saleItemRecord{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	rec := saleRecord{
		ID:              s.ID,
		SellerID:        s.SellerID,
		CustomerPhone:   s.CustomerPhone,
		CustomerName:    s.CustomerName,
		CustomerEmail:   s.CustomerEmail,
		Items:           items,
		Subtotal:        s.Subtotal,
		PlatformFee:     s.PlatformFee,
		SellerAmount:    s.SellerAmount,
		Total:           s.Total,
		Status:          string(s.Status),
		PaymentMethod:   string(s.PaymentMethod),
		PaymentStatus:   string(s.PaymentStatus),
		MPPaymentID:     s.MPPaymentID,
		MPPreferenceID:  s.MPPreferenceID,
		PixQRCode:       s.PixQRCode,
		PixQRCodeBase64: s.PixQRCodeBase64,
		PixCopyPaste:    s.PixCopyPaste,
		CheckoutURL:     s.CheckoutURL,
		BoletoURL:       s.BoletoURL,
		BoletoBarcode:   s.BoletoBarcode,
		DeliveryStatus:  string(s.DeliveryStatus),
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:       s.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}
	if s.PaidAt != nil {
		rec.PaidAt = s.PaidAt.UTC().Format(time.RFC3339Nano)
	}
	if s.DeliverySentAt != nil {
		rec.DeliverySentAt = s.DeliverySentAt.UTC().Format(time.RFC3339Nano)
	}
	return rec
}

func fromSaleRecord(it saleRecord) entities.Sale {
	items := make([]entities.SaleItem, 0, len(it.Items))
	for _, rec := range it.Items {
		items = append(items, entities.SaleItem{
			ProductID: rec.ProductID,
			Name:      rec.Name,
			Quantity:  rec.Quantity,
			UnitPrice: rec.UnitPrice,
		})
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	expiresAt, _ := time.Parse(time.RFC3339Nano, it.ExpiresAt)

	s := entities.Sale{
		ID:              it.ID,
		SellerID:        it.SellerID,
		CustomerPhone:   it.CustomerPhone,
		CustomerName:    it.CustomerName,
		CustomerEmail:   it.CustomerEmail,
		Items:           items,
		Subtotal:        it.Subtotal,
		PlatformFee:     it.PlatformFee,
		SellerAmount:    it.SellerAmount,
		Total:           it.Total,
		Status:          entities.SaleStatus(it.Status),
		PaymentMethod:   entities.PaymentMethod(it.PaymentMethod),
		PaymentStatus:   entities.PaymentStatus(it.PaymentStatus),
		MPPaymentID:     it.MPPaymentID,
		MPPreferenceID:  it.MPPreferenceID,
		PixQRCode:       it.PixQRCode,
		PixQRCodeBase64: it.PixQRCodeBase64,
		PixCopyPaste:    it.PixCopyPaste,
		CheckoutURL:     it.CheckoutURL,
		BoletoURL:       it.BoletoURL,
		BoletoBarcode:   it.BoletoBarcode,
		DeliveryStatus:  entities.DeliveryStatus(it.DeliveryStatus),
		CreatedAt:       createdAt,
		ExpiresAt:       expiresAt,
	}
	if it.PaidAt != "" {
		paidAt, _ := time.Parse(time.RFC3339Nano, it.PaidAt)
		s.PaidAt = &paidAt
	}
	if it.DeliverySentAt != "" {
		sentAt, _ := time.Parse(time.RFC3339Nano, it.DeliverySentAt)
		s.DeliverySentAt = &sentAt
	}
	return s
}
