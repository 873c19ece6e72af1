// Package table implements the small tabular dataset the batch harness
// assembles its results into: ordered columns, rows keyed by column name,
// an inner-join merge for external metadata, and CSV import/export.
package table
