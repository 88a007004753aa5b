package mailbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures an S3Mailbox. Static keys are optional; the default
// credentials chain is used when they are empty.
type S3Config struct {
	Bucket          string
	Prefix          string
	Folder          string
	Region          string
	Endpoint        string // optional, for MinIO and other S3-compatible stores
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// S3Mailbox reads messages stored as objects under prefix/folder/, the way
// an SES receipt rule or a mail-to-bucket relay drops them.
type S3Mailbox struct {
	client *s3.Client
	bucket string
	prefix string
	folder string
	server string
}

func NewS3Mailbox(ctx context.Context, cfg S3Config) (*S3Mailbox, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 mailbox bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %w", ErrMailQuery, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return openS3(ctx, client, cfg)
}

func openS3(ctx context.Context, client *s3.Client, cfg S3Config) (*S3Mailbox, error) {
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("%w: head bucket %s: %w", ErrMailQuery, cfg.Bucket, err)
	}
	return &S3Mailbox{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		folder: cfg.Folder,
		server: "s3://" + cfg.Bucket,
	}, nil
}

func (m *S3Mailbox) Server() string { return m.server }
func (m *S3Mailbox) Folder() string { return m.folder }

func (m *S3Mailbox) dir() string {
	return path.Join(m.prefix, m.folder) + "/"
}

func (m *S3Mailbox) key(uid string) string {
	return m.dir() + uid + emlExt
}

func (m *S3Mailbox) Search(ctx context.Context, q Query) ([]string, error) {
	var (
		uids  []string
		token *string
		dir   = m.dir()
	)
	for {
		out, err := m.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &m.bucket,
			Prefix:            &dir,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %w", ErrMailQuery, dir, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, emlExt) {
				continue
			}
			uid := strings.TrimSuffix(strings.TrimPrefix(key, dir), emlExt)
			if strings.Contains(uid, "/") {
				continue
			}
			msg, err := m.get(ctx, uid)
			if err != nil {
				if errors.Is(err, ErrMailQuery) {
					return nil, err
				}
				// Undecodable objects never match.
				continue
			}
			if q.Match(msg) {
				uids = append(uids, uid)
			}
		}
		if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		return uids, nil
	}
}

func (m *S3Mailbox) Fetch(ctx context.Context, uids []string) ([]Message, error) {
	out := make([]Message, 0, len(uids))
	for _, uid := range uids {
		msg, err := m.get(ctx, uid)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

func (m *S3Mailbox) get(ctx context.Context, uid string) (Message, error) {
	key := m.key(uid)
	obj, err := m.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &m.bucket, Key: &key})
	if err != nil {
		return Message{}, fmt.Errorf("%w: get %s: %w", ErrMailQuery, key, err)
	}
	defer obj.Body.Close()

	raw, err := io.ReadAll(obj.Body)
	if err != nil {
		return Message{}, fmt.Errorf("%w: read %s: %w", ErrMailQuery, key, err)
	}
	return ParseMessage(uid, raw)
}
