// Package dochub manages the raw documents feeding the ingestion
// pipeline. A Hub stores document files under a URI prefix and stages
// them into a local directory for processing; implementations exist for
// the local filesystem and, in subpackages, for S3 and MinIO.
package dochub
