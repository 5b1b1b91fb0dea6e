// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/apidiff/internal/aws"
	"github.com/tfctl/apidiff/internal/cacheutil"
	"github.com/tfctl/apidiff/internal/log"
)

// ObjectAPI is the part of the S3 client used to fetch objects.
type ObjectAPI interface {
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// options holds optional overrides for S3 access.
type options struct {
	profile     string
	region      string
	endpoint    string
	maxAttempts int
	client      ObjectAPI
	cache       *cacheutil.Cache
}

// Option customizes how S3 locations are fetched. Without options the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS) is used and nothing is
// cached.
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3 compatible store.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithMaxAttempts caps S3 request attempts.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// WithClient injects an S3 client, bypassing AWS config loading.
func WithClient(client ObjectAPI) Option {
	return func(o *options) { o.client = client }
}

// WithCache caches fetched objects keyed by their ETag.
func WithCache(c *cacheutil.Cache) Option {
	return func(o *options) { o.cache = c }
}

// ParseS3URI splits s3://bucket/key into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs a bucket and a key: %s", uri)
	}
	return bucket, key, nil
}

// openS3 fetches the object named by uri, consulting the cache first when
// the object's ETag is unchanged.
func openS3(ctx context.Context, uri string, opts ...Option) (io.ReadCloser, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	client := o.client
	if client == nil {
		cfg, err := aws.LoadAWSConfig(ctx,
			aws.WithProfile(o.profile),
			aws.WithRegion(o.region),
			aws.WithMaxAttempts(o.maxAttempts),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		client = aws.NewS3(cfg, o.endpoint)
	}

	head, err := client.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", uri, err)
	}

	sub := []string{"s3", bucket}
	cacheKey := key + "@" + awsv2.ToString(head.ETag)
	if data, ok := o.cache.Get(sub, cacheKey); ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	obj, err := client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", uri, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	log.Debugf("fetched %s: %d bytes", uri, len(data))

	if err := o.cache.Put(sub, cacheKey, data); err != nil {
		log.WithError(err).Warnf("failed to cache %s", uri)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
