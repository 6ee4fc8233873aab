// Package render presents the points of a dry run.
//
// [CSV] and [Table] write the columnated form, one row per point with the
// columns in name order. [JSON] and [YAML] write the raw points as a
// sequence of mappings whose fields keep their binding order.
package render
