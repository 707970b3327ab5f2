package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v2"
)

// StreamConfig is the harness's config-file shape: one Postgres table (or
// arbitrary query) paired with one Parquet URI and the option-table knobs
// CopyTo/CopyFrom accept. Grounded on the teacher's data.StreamConfig,
// narrowed to this harness's single source/sink pair instead of mvr's
// multi-destination fan-out.
type StreamConfig struct {
	Conn        string `yaml:"conn"`
	Table       string `yaml:"table,omitempty"`
	SQL         string `yaml:"sql,omitempty"`
	URI         string `yaml:"uri"`
	Format      string `yaml:"format,omitempty"`
	Compression string `yaml:"compression,omitempty"`
	CastMode    string `yaml:"cast_mode,omitempty"`
	MatchBy     string `yaml:"match_by,omitempty"`

	RowGroupSize      int64 `yaml:"row_group_size,omitempty"`
	RowGroupSizeBytes int64 `yaml:"row_group_size_bytes,omitempty"`
	FileSizeBytes     int64 `yaml:"file_size_bytes,omitempty"`
}

func (c *StreamConfig) Validate() error {
	if c.Conn == "" {
		return fmt.Errorf("conn is required")
	}
	if c.Table == "" && c.SQL == "" {
		return fmt.Errorf("table or sql must be provided")
	}
	if c.SQL == "" {
		c.SQL = "SELECT * FROM " + c.Table
	}
	if c.URI == "" {
		return fmt.Errorf("uri is required")
	}
	return nil
}

// getEnvVars mirrors the teacher's GetMVRVars: every environment variable
// whose name starts with prefix + "_" becomes a template variable keyed by
// the remainder of its name.
func getEnvVars(prefix string) map[string]string {
	vars := make(map[string]string)
	want := prefix + "_"
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.HasPrefix(parts[0], want) {
			vars[strings.TrimPrefix(parts[0], want)] = parts[1]
		}
	}
	return vars
}

// renderConfigTemplate runs the raw config file bytes through text/template
// with sprig's function map, substituting PGPARQUET_-prefixed environment
// variables the same way the teacher's ParseAndExecuteTemplate does.
func renderConfigTemplate(raw []byte) ([]byte, error) {
	tmpl, err := template.New("config").Funcs(sprig.TxtFuncMap()).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing config template: %w", err)
	}
	vars := getEnvVars("PGPARQUET")
	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, vars); err != nil {
		return nil, fmt.Errorf("executing config template: %w", err)
	}
	return rendered.Bytes(), nil
}

func loadStreamConfig(path string) (*StreamConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	rendered, err := renderConfigTemplate(raw)
	if err != nil {
		return nil, err
	}
	var sc StreamConfig
	if err := yaml.Unmarshal(rendered, &sc); err != nil {
		return nil, fmt.Errorf("parsing config yaml: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
