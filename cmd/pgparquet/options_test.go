package cmd

import (
	"testing"

	"github.com/dbparquet/pgparquet/rowgroup"
	"github.com/dbparquet/pgparquet/schema"
)

func TestParseCompressionKnownCodecs(t *testing.T) {
	cases := map[string]rowgroup.Compression{
		"snappy":      rowgroup.CompressionSnappy,
		"GZIP":        rowgroup.CompressionGzip,
		"zstd":        rowgroup.CompressionZstd,
		"uncompressed": rowgroup.CompressionUncompressed,
		"bogus":       rowgroup.CompressionUnset,
	}
	for in, want := range cases {
		if got := parseCompression(in); got != want {
			t.Errorf("parseCompression(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseCastModeDefaultsToStrict(t *testing.T) {
	if parseCastMode("") != schema.StrictMatch {
		t.Error("empty string should default to StrictMatch")
	}
	if parseCastMode("relaxed") != schema.RelaxedMatch {
		t.Error("\"relaxed\" should select RelaxedMatch")
	}
	if parseCastMode("strict") != schema.StrictMatch {
		t.Error("\"strict\" should select StrictMatch")
	}
}

func TestParseMatchByDefaultsToPosition(t *testing.T) {
	if parseMatchBy("") != schema.MatchByPosition {
		t.Error("empty string should default to MatchByPosition")
	}
	if parseMatchBy("name") != schema.MatchByName {
		t.Error("\"name\" should select MatchByName")
	}
}
