// Package s3 provides a store.Store backed by AWS S3.
//
// Each cache identity is one immutable object; reads fetch the whole
// payload, writes overwrite it. Construct the *s3.Client with the AWS SDK
// config loader:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	st := s3store.NewStore(s3.NewFromConfig(cfg), "my-bucket", "cache/")
package s3
