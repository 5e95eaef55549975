package scorecache

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/songchain/codec"
	"github.com/hupe1980/songchain/model"
)

// DynamoClient is the interface for DynamoDB operations.
type DynamoClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoOptions configures a Dynamo cache.
type DynamoOptions struct {
	// Codec serializes the stored rows. Defaults to codec.Default.
	Codec codec.Codec
}

// Dynamo is a Cache backed by a DynamoDB table. Saves go through UpdateItem
// with if_not_exists on created_at, so overwrites keep the original creation
// timestamp without a read-modify-write cycle.
//
// Table schema:
//   - Partition key: cache_key (string) - "collection#track_id#params_hash"
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name songchain-score-cache \
//	  --attribute-definitions AttributeName=cache_key,AttributeType=S \
//	  --key-schema AttributeName=cache_key,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type Dynamo struct {
	client DynamoClient
	table  string
	codec  codec.Codec
}

var _ Cache = (*Dynamo)(nil)

// NewDynamo creates a cache on the given table.
func NewDynamo(client DynamoClient, table string, optFns ...func(*DynamoOptions)) *Dynamo {
	opts := DynamoOptions{
		Codec: codec.Default,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Dynamo{
		client: client,
		table:  table,
		codec:  opts.Codec,
	}
}

// Get returns the cached results for key.
func (d *Dynamo) Get(ctx context.Context, key Key) ([]model.SimilarityCandidate, bool, error) {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"cache_key": &types.AttributeValueMemberS{Value: cacheKey(key)},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("dynamodb get: %w", err)
	}

	if len(resp.Item) == 0 {
		return nil, false, nil
	}

	data, ok := resp.Item["results"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, false, NewDecodeError(key, fmt.Errorf("results attribute missing or not binary"))
	}

	var results []model.SimilarityCandidate
	if err := d.codec.Unmarshal(data.Value, &results); err != nil {
		return nil, false, NewDecodeError(key, err)
	}

	return results, true, nil
}

// Save inserts or overwrites the results for key.
func (d *Dynamo) Save(ctx context.Context, key Key, results []model.SimilarityCandidate) error {
	data, err := d.codec.Marshal(results)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"cache_key": &types.AttributeValueMemberS{Value: cacheKey(key)},
		},
		UpdateExpression: aws.String("SET results = :r, updated_at = :u, created_at = if_not_exists(created_at, :u)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": &types.AttributeValueMemberB{Value: data},
			":u": &types.AttributeValueMemberS{Value: now},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb update: %w", err)
	}

	return nil
}

func cacheKey(key Key) string {
	return fmt.Sprintf("%s#%s#%s", key.Collection, key.TrackID, key.ParamsHash)
}
