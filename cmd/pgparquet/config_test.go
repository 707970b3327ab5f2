package cmd

import (
	"os"
	"testing"
)

func TestStreamConfigValidateDefaultsSQLFromTable(t *testing.T) {
	sc := &StreamConfig{Conn: "postgres://x", Table: "public.orders", URI: "s3://bucket/orders.parquet"}
	if err := sc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sc.SQL != "SELECT * FROM public.orders" {
		t.Errorf("SQL = %q, want derived from Table", sc.SQL)
	}
}

func TestStreamConfigValidateRequiresConnAndURI(t *testing.T) {
	cases := []*StreamConfig{
		{Table: "t", URI: "f.parquet"},
		{Conn: "c", Table: "t"},
		{Conn: "c", URI: "f.parquet"},
	}
	for _, sc := range cases {
		if err := sc.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want an error", sc)
		}
	}
}

func TestGetEnvVarsFiltersByPrefix(t *testing.T) {
	os.Setenv("PGPARQUET_REGION", "us-east-1")
	os.Setenv("OTHER_VAR", "ignored")
	defer os.Unsetenv("PGPARQUET_REGION")
	defer os.Unsetenv("OTHER_VAR")

	vars := getEnvVars("PGPARQUET")
	if vars["REGION"] != "us-east-1" {
		t.Errorf("vars[REGION] = %q, want us-east-1", vars["REGION"])
	}
	if _, ok := vars["OTHER_VAR"]; ok {
		t.Errorf("expected OTHER_VAR to be excluded")
	}
}

func TestRenderConfigTemplateSubstitutesEnvVar(t *testing.T) {
	os.Setenv("PGPARQUET_BUCKET", "my-bucket")
	defer os.Unsetenv("PGPARQUET_BUCKET")

	raw := []byte("uri: s3://{{ .BUCKET }}/out.parquet\n")
	rendered, err := renderConfigTemplate(raw)
	if err != nil {
		t.Fatalf("renderConfigTemplate: %v", err)
	}
	want := "uri: s3://my-bucket/out.parquet\n"
	if string(rendered) != want {
		t.Errorf("rendered = %q, want %q", rendered, want)
	}
}

func TestLoadStreamConfigParsesYaml(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	contents := "conn: postgres://localhost/db\ntable: public.orders\nuri: /tmp/orders.parquet\ncompression: gzip\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sc, err := loadStreamConfig(path)
	if err != nil {
		t.Fatalf("loadStreamConfig: %v", err)
	}
	if sc.Conn != "postgres://localhost/db" || sc.Table != "public.orders" || sc.Compression != "gzip" {
		t.Errorf("parsed config = %+v, unexpected field values", sc)
	}
}
