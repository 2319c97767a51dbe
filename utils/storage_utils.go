package utils

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Storage uploads quotation documents to an S3-compatible object store.
type S3Storage struct {
	client *s3.S3
	bucket string
}

func NewS3Storage(bucket, region, endpoint string) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket not configured")
	}
	if region == "" {
		region = "us-east-1"
	}

	cfg := &aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	if key := os.Getenv("S3_ACCESS_KEY"); key != "" {
		cfg.Credentials = credentials.NewStaticCredentials(key, os.Getenv("S3_SECRET_KEY"), "")
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Storage{client: s3.New(sess), bucket: bucket}, nil
}

func (s *S3Storage) Upload(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(ContentTypeForFile(fileName)),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return filePath, nil
}

// ContentTypeForFile maps a document extension to its MIME type, defaulting
// to a binary stream.
func ContentTypeForFile(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
