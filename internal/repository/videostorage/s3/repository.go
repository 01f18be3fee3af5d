package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrObjectNotFound = errors.New("object not found")

type Object struct {
	Key  string
	Size int64
}

type ObjectInfo struct {
	Size int64
	// user metadata; S3-compatible stores return keys lowercased
	Metadata map[string]string
}

type repo struct {
	client *awss3.Client
	bucket string
}

func NewRepo(client *awss3.Client, bucket string) *repo {
	return &repo{
		client: client,
		bucket: bucket,
	}
}

func (r *repo) ListObjects(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object

	paginator := awss3.NewListObjectsV2Paginator(r.client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			})
		}
	}

	return objects, nil
}

func (r *repo) HeadObject(ctx context.Context, key string) (ObjectInfo, error) {
	out, err := r.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return ObjectInfo{}, ErrObjectNotFound
		}

		return ObjectInfo{}, fmt.Errorf("failed to head object %q: %w", key, err)
	}

	return ObjectInfo{
		Size:     aws.ToInt64(out.ContentLength),
		Metadata: out.Metadata,
	}, nil
}
