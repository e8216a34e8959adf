// Package s3 implements dochub.Hub backed by Amazon S3 using the AWS
// SDK v2. Uploads stream through the transfer manager; listings use the
// ListObjectsV2 paginator.
package s3
