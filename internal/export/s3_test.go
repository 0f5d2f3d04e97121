package export

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/exparity/userdao/internal/config"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Destination_Write(t *testing.T) {
	fake := &fakeS3{}
	dest := &S3Destination{client: fake, bucket: "backups", key: "userdao/users.jsonl"}

	if err := dest.Write(context.Background(), []byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if aws.ToString(fake.input.Bucket) != "backups" || aws.ToString(fake.input.Key) != "userdao/users.jsonl" {
		t.Errorf("unexpected target: %s/%s", aws.ToString(fake.input.Bucket), aws.ToString(fake.input.Key))
	}
	if aws.ToString(fake.input.ContentType) != "application/x-ndjson" {
		t.Errorf("ContentType = %q", aws.ToString(fake.input.ContentType))
	}
	if string(fake.body) != "payload" {
		t.Errorf("body = %q", fake.body)
	}
	if dest.String() != "s3://backups/userdao/users.jsonl" {
		t.Errorf("String() = %q", dest.String())
	}
}

func TestS3Destination_WriteError(t *testing.T) {
	denied := errors.New("access denied")
	dest := &S3Destination{client: &fakeS3{err: denied}, bucket: "b", key: "k"}

	if err := dest.Write(context.Background(), []byte("x")); !errors.Is(err, denied) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewS3Destination(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	if _, err := NewS3Destination(context.Background(), config.Export{}); err == nil {
		t.Fatal("expected error without a bucket")
	}

	dest, err := NewS3Destination(context.Background(), config.Export{
		S3Bucket:   "backups",
		S3Key:      "users.jsonl",
		S3Region:   "us-east-1",
		S3Endpoint: "http://localhost:9000",
	})
	if err != nil {
		t.Fatalf("NewS3Destination: %v", err)
	}
	if dest.bucket != "backups" || dest.key != "users.jsonl" {
		t.Fatalf("unexpected destination: %+v", dest)
	}
}
