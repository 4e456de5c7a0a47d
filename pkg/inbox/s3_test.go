package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-cmp/cmp"
)

type fakeS3 struct {
	err    error
	inputs []*s3.PutObjectInput
	bodies [][]byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkDeliver(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3Sink(client, "inbox-bucket", "contact")

	sub := NewSubmission(testValues(), ChannelAPI, "")
	sub.ReceivedAt = time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)

	if err := sink.Deliver(context.Background(), sub); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("Expected 1 PutObject call, got %d", len(client.inputs))
	}

	in := client.inputs[0]
	wantKey := "contact/2026/03/07/" + sub.ID.String() + ".json"
	if aws.ToString(in.Key) != wantKey {
		t.Errorf("Expected key %q, got %q", wantKey, aws.ToString(in.Key))
	}
	if aws.ToString(in.Bucket) != "inbox-bucket" {
		t.Errorf("Unexpected bucket %q", aws.ToString(in.Bucket))
	}
	if aws.ToString(in.ContentType) != "application/json" {
		t.Errorf("Unexpected content type %q", aws.ToString(in.ContentType))
	}
	if in.Metadata["channel"] != ChannelAPI {
		t.Errorf("Unexpected metadata %v", in.Metadata)
	}

	var decoded Submission
	if err := json.Unmarshal(client.bodies[0], &decoded); err != nil {
		t.Fatalf("Body is not JSON: %v", err)
	}
	if diff := cmp.Diff(sub, decoded); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
}

func TestS3SinkKeyWithoutPrefix(t *testing.T) {
	sink := NewS3Sink(&fakeS3{}, "b", "")
	sub := NewSubmission(testValues(), ChannelAPI, "")
	sub.ReceivedAt = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	want := "2026/12/31/" + sub.ID.String() + ".json"
	if got := sink.ObjectKey(sub); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestS3SinkError(t *testing.T) {
	boom := errors.New("access denied")
	sink := NewS3Sink(&fakeS3{err: boom}, "b", "p")

	err := sink.Deliver(context.Background(), NewSubmission(testValues(), ChannelAPI, ""))
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client(S3Options{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	opts := client.Options()

	if opts.Region != "eu-west-1" {
		t.Errorf("Unexpected region %q", opts.Region)
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("Unexpected endpoint %q", aws.ToString(opts.BaseEndpoint))
	}
	if !opts.UsePathStyle {
		t.Error("Expected path-style addressing")
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected ErrNoCredentials, got %v", err)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	creds, err := envCredentials(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
}
