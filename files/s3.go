package files

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const defaultAWSRegion = "ap-northeast-2"

// S3Conn bundles the AWS clients the S3 source and sink share. Set Region
// before calling Init, or leave it for the default.
type S3Conn struct {
	Region string

	sess       *session.Session
	svc        *s3.S3
	downloader *s3manager.Downloader
	uploader   *s3manager.Uploader
}

// Init establishes the AWS session and service clients.
func (c *S3Conn) Init() error {
	if c.Region == "" {
		c.Region = defaultAWSRegion
	}
	var err error
	c.sess, err = session.NewSession(&aws.Config{
		Region: aws.String(c.Region),
	})
	if err != nil {
		return fmt.Errorf("set up aws session: %w", err)
	}
	c.svc = s3.New(c.sess)
	c.downloader = s3manager.NewDownloader(c.sess)
	c.uploader = s3manager.NewUploader(c.sess)
	return nil
}

// S3Source lists and downloads receipt images under a bucket prefix.
type S3Source struct {
	Conn   *S3Conn
	Bucket string
	Prefix string
}

func (s *S3Source) Files(ctx context.Context) ([]File, error) {
	var keys []string
	err := s.Conn.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.Prefix),
	}, func(page *s3.ListObjectsV2Output, last bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			if imageExtensions[strings.ToLower(path.Ext(key))] {
				keys = append(keys, key)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("list s3://%s/%s: %w", s.Bucket, s.Prefix, err)
	}

	out := make([]File, 0, len(keys))
	for _, key := range keys {
		buf := aws.NewWriteAtBuffer(nil)
		_, err := s.Conn.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("download s3://%s/%s: %w", s.Bucket, key, err)
		}
		out = append(out, File{Name: path.Base(key), Data: buf.Bytes()})
	}
	return out, nil
}

// S3Sink uploads artifacts under a bucket prefix. The upload manager owns
// the multipart staging and aborts incomplete uploads itself, so there is no
// local temporary state to release.
type S3Sink struct {
	Conn   *S3Conn
	Bucket string
	Prefix string
}

func (s *S3Sink) Save(ctx context.Context, name string, data []byte, mimeType string) error {
	key := path.Join(s.Prefix, path.Base(name))
	_, err := s.Conn.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", s.Bucket, key, err)
	}
	return nil
}
