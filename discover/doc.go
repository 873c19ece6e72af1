// Package discover enumerates measurement files for batch processing and
// can watch a directory for newly arriving ones.
package discover
