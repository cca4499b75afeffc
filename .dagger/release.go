package main

import (
	"context"
	"fmt"
	"path"

	"dagger/cultura/internal/dagger"
)

// bucket is the S3-compatible destination of release artifacts.
type bucket struct {
	endpoint        *dagger.Secret
	name            *dagger.Secret
	accessKeyId     *dagger.Secret
	secretAccessKey *dagger.Secret
}

// sync uploads artifacts under prefix with the AWS CLI.
func (b *bucket) sync(ctx context.Context, artifacts *dagger.Directory, prefix string) error {
	name, err := b.name.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket name: %w", err)
	}

	endpointUrl, err := b.endpoint.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get endpoint: %w", err)
	}

	_, err = dag.Container().
		From("amazon/aws-cli:latest").
		WithSecretVariable("AWS_ACCESS_KEY_ID", b.accessKeyId).
		WithSecretVariable("AWS_SECRET_ACCESS_KEY", b.secretAccessKey).
		WithEnvVariable("AWS_DEFAULT_REGION", "auto").
		WithDirectory("/artifacts", artifacts).
		WithWorkdir("/artifacts").
		WithExec([]string{
			"aws", "s3", "sync", ".",
			fmt.Sprintf("s3://%s", path.Join(name, prefix)),
			"--endpoint-url", endpointUrl,
		}).
		Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to upload artifacts to %q: %w", prefix, err)
	}
	return nil
}

// Release builds versioned binaries and uploads them under the version.
// Tagged versions are also uploaded as "latest"; the version "nightly"
// only replaces the nightly artifacts.
func (c *Cultura) Release(
	ctx context.Context,

	// Version string (e.g., "v1.0.0" or "nightly")
	version string,

	// Git commit SHA
	commit string,

	// Bucket endpoint URL
	endpoint *dagger.Secret,

	// Bucket name
	bucketName *dagger.Secret,

	// Bucket access key ID
	accessKeyId *dagger.Secret,

	// Bucket secret access key
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	dest := &bucket{
		endpoint:        endpoint,
		name:            bucketName,
		accessKeyId:     accessKeyId,
		secretAccessKey: secretAccessKey,
	}

	artifacts := c.BuildRelease(ctx, version, commit)
	if err := dest.sync(ctx, artifacts, version); err != nil {
		return artifacts, err
	}

	if version == "nightly" {
		return artifacts, nil
	}
	return artifacts, dest.sync(ctx, artifacts, "latest")
}
