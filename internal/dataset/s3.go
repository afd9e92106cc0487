package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds client settings for s3:// sources. Credentials come from the
// default AWS chain (environment, shared config, instance role).
type S3Config struct {
	Region    string `yaml:"region,omitempty" toml:"region" json:"region,omitempty" env:"LAUNCHDASH_S3_REGION"`
	Endpoint  string `yaml:"endpoint,omitempty" toml:"endpoint" json:"endpoint,omitempty" env:"LAUNCHDASH_S3_ENDPOINT"` // optional; e.g. MinIO
	PathStyle bool   `yaml:"path_style,omitempty" toml:"path_style" json:"path_style,omitempty" env:"LAUNCHDASH_S3_PATH_STYLE"`
}

// ObjectGetter is the subset of the S3 client used to fetch a dataset object.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Compile-time interface check.
var _ ObjectGetter = (*s3.Client)(nil)

// NewS3Client builds an S3 client from cfg. The region defaults to us-east-1.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// ParseS3URI splits s3://bucket/key. ok is false for anything else, including
// URIs with an empty bucket or key.
func ParseS3URI(source string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(source, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func getObjectInput(bucket, key string) *s3.GetObjectInput {
	return &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}
}
