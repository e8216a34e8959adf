// Package minio implements dochub.Hub for MinIO and other S3-compatible
// object stores using the MinIO Go client.
package minio
