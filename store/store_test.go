package store

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		uri  string
		want Scheme
	}{
		{"/tmp/out.parquet", SchemeLocal},
		{"file:///tmp/out.parquet", SchemeLocal},
		{"s3://bucket/key.parquet", SchemeS3},
		{"https://my-bucket.s3.amazonaws.com/key.parquet", SchemeS3},
		{"https://my-bucket.s3.us-east-1.amazonaws.com/key.parquet", SchemeS3},
		{"az://account/container/blob.parquet", SchemeAzure},
		{"azure://account/container/blob.parquet", SchemeAzure},
		{"https://account.blob.core.windows.net/container/blob.parquet", SchemeAzure},
		{"https://example.com/data.parquet", SchemeHTTP},
		{"http://example.com/data.parquet", SchemeHTTP},
	}
	for _, c := range cases {
		got, err := Classify(c.uri)
		if err != nil {
			t.Fatalf("Classify(%q): %v", c.uri, err)
		}
		if got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.uri, got, c.want)
		}
	}
}

func TestClassifyRejectsUnknownScheme(t *testing.T) {
	if _, err := Classify("ftp://host/path"); err == nil {
		t.Fatal("expected error for unrecognized scheme")
	}
}

func TestNonWildcardPrefix(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"a/b/c.parquet", "a/b/c.parquet"},
		{"a/b/*.parquet", "a/b"},
		{"a/*/c.parquet", "a"},
		{"*.parquet", ""},
	}
	for _, c := range cases {
		if got := nonWildcardPrefix(c.pattern); got != c.want {
			t.Errorf("nonWildcardPrefix(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}
}

func TestForDispatchesByScheme(t *testing.T) {
	s, err := For("/tmp/out.parquet")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if _, ok := s.(Local); !ok {
		t.Fatalf("For(local path) = %T, want Local", s)
	}

	s, err = For("https://example.com/data.parquet")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if _, ok := s.(HTTP); !ok {
		t.Fatalf("For(http uri) = %T, want HTTP", s)
	}
}
