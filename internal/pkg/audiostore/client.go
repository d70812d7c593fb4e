package audiostore

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps the S3 client with audio-delivery functionality
type Client struct {
	s3Client  *s3.Client
	presigner *s3.PresignClient
	config    *Config
}

var (
	defaultClient *Client
	clientOnce    sync.Once
)

// NewClient creates a new S3 audio client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("S3 audio delivery is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible providers need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	return &Client{
		s3Client:  s3Client,
		presigner: s3.NewPresignClient(s3Client),
		config:    cfg,
	}, nil
}

// GetDefaultClient returns the lazily initialized shared client, or nil
// when audio delivery is not configured.
func GetDefaultClient() *Client {
	clientOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			log.Printf("[AudioStore] Invalid configuration: %v", err)
			return
		}
		if !cfg.IsEnabled() {
			return
		}
		client, err := NewClient(cfg)
		if err != nil {
			log.Printf("[AudioStore] Failed to initialize S3 client: %v", err)
			return
		}
		log.Printf("[AudioStore] Initialized S3 audio delivery for bucket: %s", cfg.GetBucketName())
		defaultClient = client
	})
	return defaultClient
}

// PresignAudioURL issues a time-limited GET URL for a session's audio object.
func (c *Client) PresignAudioURL(ctx context.Context, sessionUUID string, expires time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.config.GetBucketName()),
		Key:    aws.String(c.config.GetObjectKey(sessionUUID)),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign audio url: %w", err)
	}
	return req.URL, nil
}
