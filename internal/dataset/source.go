package dataset

import (
	"context"
	"fmt"
	"io"
)

// LoadFile reads a dataset from a local path.
func LoadFile(path string, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)
	if o.source == "" {
		opts = append(opts, WithSourceName(path))
	}
	f, err := o.fs.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)}
	}
	defer f.Close() //nolint:errcheck // read-only
	return Load(f, opts...)
}

// LoadSource reads a dataset from an s3://bucket/key URI or a local path.
func LoadSource(ctx context.Context, source string, opts ...Option) (*Dataset, error) {
	if source == "" {
		return nil, &LoadError{Err: fmt.Errorf("%w: no dataset source configured", ErrUnreadable)}
	}

	bucket, key, ok := ParseS3URI(source)
	if !ok {
		return LoadFile(source, opts...)
	}

	o := applyOptions(opts)
	client := o.s3Client
	if client == nil {
		c, err := NewS3Client(ctx, o.s3)
		if err != nil {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)}
		}
		client = c
	}

	body, err := openObject(ctx, client, bucket, key)
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)}
	}
	defer body.Close() //nolint:errcheck // read-only

	return Load(body, append([]Option{WithSourceName(source)}, opts...)...)
}

func openObject(ctx context.Context, client ObjectGetter, bucket, key string) (io.ReadCloser, error) {
	out, err := client.GetObject(ctx, getObjectInput(bucket, key))
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
