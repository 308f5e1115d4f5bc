package textract

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/ocr/awsRegion"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// Client implements textDetection.TextDetector on AWS Textract.
type Client struct {
	configs *awsRegion.ConfigCache
	optFns  []func(*textract.Options)

	mu      sync.RWMutex
	clients map[string]*textract.Client
}

func NewClient(configs *awsRegion.ConfigCache, optFns ...func(*textract.Options)) *Client {
	return &Client{
		configs: configs,
		optFns:  optFns,
		clients: make(map[string]*textract.Client),
	}
}

func (c *Client) forRegion(ctx context.Context, region string) (*textract.Client, error) {
	c.mu.RLock()
	client, exists := c.clients[region]
	c.mu.RUnlock()
	if exists {
		return client, nil
	}

	cfg, err := c.configs.Get(ctx, region)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if client, exists = c.clients[region]; exists {
		return client, nil
	}
	client = textract.NewFromConfig(cfg, c.optFns...)
	c.clients[region] = client
	return client, nil
}

func (c *Client) DetectDocumentText(ctx context.Context, region string, document []byte) ([]documentModel.Block, error) {
	client, err := c.forRegion(ctx, region)
	if err != nil {
		return nil, err
	}
	out, err := client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: document},
	})
	if err != nil {
		return nil, fmt.Errorf("textract detect: %w", err)
	}
	return toBlocks(out.Blocks), nil
}

func (c *Client) StartDocumentTextDetection(ctx context.Context, region, bucket, key string) (string, error) {
	client, err := c.forRegion(ctx, region)
	if err != nil {
		return "", err
	}
	out, err := client.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("textract start job: %w", err)
	}
	return aws.ToString(out.JobId), nil
}

func (c *Client) GetDocumentTextDetection(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
	client, err := c.forRegion(ctx, region)
	if err != nil {
		return documentModel.JobPage{}, err
	}

	input := &textract.GetDocumentTextDetectionInput{
		JobId:      aws.String(jobId),
		MaxResults: aws.Int32(maxResults),
	}
	if nextToken != "" {
		input.NextToken = aws.String(nextToken)
	}

	out, err := client.GetDocumentTextDetection(ctx, input)
	if err != nil {
		return documentModel.JobPage{}, fmt.Errorf("textract get job %s: %w", jobId, err)
	}
	return documentModel.JobPage{
		Status:        documentModel.JobStatus(out.JobStatus),
		StatusMessage: aws.ToString(out.StatusMessage),
		Blocks:        toBlocks(out.Blocks),
		NextToken:     aws.ToString(out.NextToken),
	}, nil
}

func toBlocks(in []types.Block) []documentModel.Block {
	blocks := make([]documentModel.Block, 0, len(in))
	for _, b := range in {
		blocks = append(blocks, documentModel.Block{
			BlockType: documentModel.BlockType(b.BlockType),
			Text:      aws.ToString(b.Text),
		})
	}
	return blocks
}
