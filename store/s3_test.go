package store

import (
	"context"
	"testing"
)

func TestParseS3URI(t *testing.T) {
	cases := []struct {
		uri        string
		bucket, key string
	}{
		{"s3://my-bucket/path/to/file.parquet", "my-bucket", "path/to/file.parquet"},
		{"https://my-bucket.s3.amazonaws.com/path/to/file.parquet", "my-bucket", "path/to/file.parquet"},
	}
	for _, c := range cases {
		bucket, key, err := parseS3URI(c.uri)
		if err != nil {
			t.Fatalf("parseS3URI(%q): %v", c.uri, err)
		}
		if bucket != c.bucket || key != c.key {
			t.Errorf("parseS3URI(%q) = (%q, %q), want (%q, %q)", c.uri, bucket, key, c.bucket, c.key)
		}
	}
}

func TestS3UnconfiguredClientReportsError(t *testing.T) {
	s := &S3{}
	ctx := context.Background()
	if _, err := s.Create(ctx, "s3://bucket/key"); err == nil {
		t.Fatal("expected error from unconfigured S3 client")
	}
	if _, err := s.OpenRange(ctx, "s3://bucket/key"); err == nil {
		t.Fatal("expected error from unconfigured S3 client")
	}
	if _, err := s.List(ctx, "s3://bucket/key"); err == nil {
		t.Fatal("expected error from unconfigured S3 client")
	}
}
