package repository

import (
	"context"
	"strconv"

	"isa_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSettingsTableName = "platform_settings"
	commissionRateSetting    = "commission_rate"
)

type settingRecord struct {
	Key   string `dynamodbav:"key"`
	Value string `dynamodbav:"value"`
}

// PlatformSettingsDynamoRepository reads platform configuration rows.
//
// Table requirements:
//   - PK: key (string)
//
// A missing commission_rate row yields 0 with a nil error; the checkout flow
// owns the documented default-and-warn fallback.

type PlatformSettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPlatformSettings = (*PlatformSettingsDynamoRepository)(nil)

func NewPlatformSettingsDynamoRepository(ddb *dynamodb.Client) *PlatformSettingsDynamoRepository {
	return &PlatformSettingsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PLATFORM_SETTINGS_TABLE", defaultSettingsTableName),
	}
}

func (r *PlatformSettingsDynamoRepository) CommissionRate(ctx context.Context) (float64, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: commissionRateSetting},
		},
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 0, nil
	}

	var it settingRecord
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return 0, err
	}
	rate, err := strconv.ParseFloat(it.Value, 64)
	if err != nil {
		return 0, nil
	}
	return rate, nil
}
