package convert

import "encoding/json"

// geoParquetColumnMeta is one entry of the "geo" key's "columns" map, per
// the GeoParquet file-metadata convention: encoding, the observed geometry
// types (left empty here — the encoder never inspects WKB type bytes for
// this, only its bounding box), CRS, and bounding box.
type geoParquetColumnMeta struct {
	Encoding      string   `json:"encoding"`
	GeometryTypes []string `json:"geometry_types"`
	CRS           any      `json:"crs,omitempty"`
	Bbox          []float64 `json:"bbox,omitempty"`
}

type geoParquetFileMeta struct {
	Version       string                          `json:"version"`
	PrimaryColumn string                          `json:"primary_column"`
	Columns       map[string]geoParquetColumnMeta `json:"columns"`
}

// BuildGeoParquetMetadata serializes the accumulated per-column bounding
// boxes and CRS into the JSON value GeoParquet's "geo" file-level
// key-value metadata entry expects. names must list the geometry/geography
// columns in schema order; the first becomes "primary_column" per the
// format's single-primary-geometry-column convention. Returns "" if names
// is empty (no geometry columns, no metadata to attach).
func BuildGeoParquetMetadata(names []string, cols map[string]*GeoParquetMeta) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	out := geoParquetFileMeta{
		Version:       "1.0.0",
		PrimaryColumn: names[0],
		Columns:       make(map[string]geoParquetColumnMeta, len(names)),
	}
	for _, name := range names {
		col := geoParquetColumnMeta{Encoding: "WKB", GeometryTypes: []string{}}
		if g := cols[name]; g != nil {
			if g.CRS != "" {
				col.CRS = g.CRS
			}
			if g.HasBounds {
				col.Bbox = []float64{g.MinX, g.MinY, g.MaxX, g.MaxY}
			}
		}
		out.Columns[name] = col
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
