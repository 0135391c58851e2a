// Package s3 stores generated documents in an OSS bucket.
package s3

import (
	"context"
	"io"
	"os"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

var (
	ReportBucket  *oss.Bucket
	PutObjectFunc = PutObject
)

func Enabled() bool {
	return ReportBucket != nil
}

// Bootstrap connects the report bucket when OSS_ENDPOINT and OSS_BUCKET are set.
func Bootstrap() error {
	endpoint := os.ExpandEnv(os.Getenv("OSS_ENDPOINT"))
	bucket := os.Getenv("OSS_BUCKET")
	if endpoint == "" || bucket == "" {
		return nil
	}
	b, err := BuildBucket(endpoint, os.Getenv("OSS_ACCESS_KEY"), os.Getenv("OSS_SECRET_KEY"), bucket)
	if err != nil {
		return err
	}
	ReportBucket = b
	return nil
}

func BuildBucket(endpoint, accessKey, secretKey, bucketName string) (*oss.Bucket, error) {
	// endpoint http://oss-cn-hangzhou.aliyuncs.com
	cli, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, err
	}
	return cli.Bucket(bucketName)
}

func PutObject(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error {
	if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
		sp := parentSpan.Tracer().StartSpan("put-object", opentracing.ChildOf(parentSpan.Context()))
		sp.SetTag("object-key", key)
		defer sp.Finish()

		err := ReportBucket.PutObject(key, r, opts...)
		ext.Error.Set(sp, err != nil)
		return err
	}
	return ReportBucket.PutObject(key, r, opts...)
}
