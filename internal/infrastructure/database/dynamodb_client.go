package database

import (
	"context"
	"log"

	appconfig "github.com/Lee196444/Text2toss-app/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client for the configured region and,
// when DYNAMODB_ENDPOINT is set, a local endpoint (e.g. http://dynamodb:8000).
func ConnectDynamoDB(app appconfig.App) *dynamodb.Client {
	cfg, err := NewDynamoDBConfig(context.Background(), app)
	if err != nil {
		log.Fatalf("failed to create dynamodb config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if app.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(app.DynamoDBEndpoint)
		}
	})
}

func NewDynamoDBConfig(ctx context.Context, app appconfig.App) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(app.AWSAccessKeyID, app.AWSSecretAccessKey, "")

	log.Printf("[storage][dynamodb] region=%s endpoint=%q", app.AWSRegion, app.DynamoDBEndpoint)
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(app.AWSRegion),
		config.WithCredentialsProvider(creds),
	)
}
