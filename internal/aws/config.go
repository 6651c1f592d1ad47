// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	cdconfig "github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/log"
)

type options struct {
	profile string
	region  string
}

// Option customizes how AWS config is loaded. With no options the shell
// environment and the shared config chain apply (AWS_PROFILE, ~/.aws/config,
// IMDS and so on).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// FromConfig returns the options set in the contractdiff config file under
// aws.profile and aws.region.
func FromConfig() []Option {
	var opts []Option
	if p, err := cdconfig.GetString("aws.profile"); err == nil && p != "" {
		opts = append(opts, WithProfile(p))
	}
	if r, err := cdconfig.GetString("aws.region"); err == nil && r != "" {
		opts = append(opts, WithRegion(r))
	}
	return opts
}

func loadOptions(opts ...Option) []func(*config.LoadOptions) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("aws opts: profile=%s region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	return loadOpts
}

// LoadAWSConfig loads AWS SDK v2 config.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts...)...)
	if err != nil {
		return awsv2.Config{}, err
	}
	return cfg, nil
}

// NewS3 constructs an S3 client from cfg.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithEndpoint points the S3 client at an S3-compatible endpoint using
// path-style addressing. An empty url leaves the client untouched.
func WithEndpoint(url string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if url == "" {
			return
		}
		o.BaseEndpoint = awsv2.String(url)
		o.UsePathStyle = true
	}
}
