// Package minio provides a store.Store backed by MinIO or any
// S3-compatible object storage.
//
// Each cache identity is one immutable object; reads fetch the whole
// payload, writes overwrite it. The package is a thin mapping layer: all
// credentials, TLS and retry behavior belong to the *minio.Client supplied
// by the caller.
package minio
