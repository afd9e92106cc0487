package dataset

import "github.com/davetashner/launchdash/internal/testable"

// Option configures Load, LoadFile and LoadSource.
type Option func(*loadOptions)

type loadOptions struct {
	delimiter rune
	columns   Columns
	source    string
	fs        testable.FileSystem
	s3        S3Config
	s3Client  ObjectGetter
}

func applyOptions(opts []Option) loadOptions {
	o := loadOptions{
		delimiter: ',',
		fs:        testable.DefaultFS,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDelimiter sets the field delimiter. Zero keeps the default comma.
func WithDelimiter(d rune) Option {
	return func(o *loadOptions) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// WithColumns overrides the required column names. Empty names keep defaults.
func WithColumns(c Columns) Option {
	return func(o *loadOptions) { o.columns = c }
}

// WithSourceName labels the source in errors and Dataset.Source.
func WithSourceName(name string) Option {
	return func(o *loadOptions) { o.source = name }
}

// WithFileSystem replaces the file system used for local sources.
func WithFileSystem(fs testable.FileSystem) Option {
	return func(o *loadOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithS3Config sets the client settings for s3:// sources.
func WithS3Config(cfg S3Config) Option {
	return func(o *loadOptions) { o.s3 = cfg }
}

// WithS3Client injects the client used for s3:// sources.
func WithS3Client(c ObjectGetter) Option {
	return func(o *loadOptions) { o.s3Client = c }
}
