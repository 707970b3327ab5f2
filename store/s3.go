package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 implements Store over AWS S3 (and S3-compatible endpoints), reading
// credentials and endpoint overrides the way the pack's aws-sdk-go-v2
// stack resolves them: AWS_* environment variables plus
// AWS_ENDPOINT_URL/AWS_ALLOW_HTTP for S3-compatible object stores.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
}

func NewS3() *S3 {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		// Deferred: with no client, every Store method returns a
		// "client not configured" error; the load error itself is not kept.
		return &S3{}
	}
	opts := func(o *s3.Options) {
		if ep := os.Getenv("AWS_ENDPOINT_URL"); ep != "" {
			o.BaseEndpoint = &ep
		}
		if allow, _ := strconv.ParseBool(os.Getenv("AWS_ALLOW_HTTP")); allow {
			o.UsePathStyle = true
		}
	}
	client := s3.NewFromConfig(cfg, opts)
	return &S3{client: client, uploader: manager.NewUploader(client)}
}

func parseS3URI(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("store: parsing s3 uri %q: %w", raw, err)
	}
	if u.Scheme == "s3" {
		return u.Host, strings.TrimPrefix(u.Path, "/"), nil
	}
	// virtual-hosted *.s3.amazonaws.com
	host := u.Hostname()
	bucket = strings.SplitN(host, ".", 2)[0]
	return bucket, strings.TrimPrefix(u.Path, "/"), nil
}

func (s *S3) Create(ctx context.Context, uri string) (io.WriteCloser, error) {
	if s.client == nil {
		return nil, fmt.Errorf("store: s3 client not configured")
	}
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		defer pr.Close()
		_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: &bucket,
			Key:    &key,
			Body:   pr,
		})
		done <- err
	}()
	return &s3WriteCloser{pw: pw, done: done}, nil
}

type s3WriteCloser struct {
	pw   *io.PipeWriter
	done chan error
}

func (w *s3WriteCloser) Write(p []byte) (int, error) { return w.pw.Write(p) }

func (w *s3WriteCloser) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	if err := <-w.done; err != nil {
		return fmt.Errorf("store: s3 upload failed: %w", err)
	}
	return nil
}

type s3RangeReader struct {
	client *s3.Client
	bucket string
	key    string
	size   int64
}

func (r *s3RangeReader) Size() int64 { return r.size }

func (r *s3RangeReader) ReadAt(p []byte, off int64) (int, error) {
	rng := fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1)
	out, err := r.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &r.key,
		Range:  &rng,
	})
	if err != nil {
		return 0, fmt.Errorf("store: s3 GetObject range read: %w", err)
	}
	defer out.Body.Close()
	return io.ReadFull(out.Body, p)
}

func (r *s3RangeReader) Close() error { return nil }

func (s *S3) OpenRange(ctx context.Context, uri string) (RangeReader, error) {
	if s.client == nil {
		return nil, fmt.Errorf("store: s3 client not configured")
	}
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("store: s3 HeadObject: %w", err)
	}
	size := int64(0)
	if head.ContentLength != nil {
		size = *head.ContentLength
	}
	return &s3RangeReader{client: s.client, bucket: bucket, key: key, size: size}, nil
}

func (s *S3) List(ctx context.Context, uri string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("store: s3 client not configured")
	}
	bucket, pattern, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	prefix := nonWildcardPrefix(pattern)

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &bucket,
		Prefix: &prefix,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("store: s3 ListObjectsV2: %w", err)
		}
		for _, obj := range page.Contents {
			if ok, _ := path.Match(pattern, *obj.Key); !ok {
				continue
			}
			keys = append(keys, fmt.Sprintf("s3://%s/%s", bucket, *obj.Key))
		}
	}
	return keys, nil
}
