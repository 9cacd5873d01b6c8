package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string]string
	gotKey  string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.gotKey = k
	body, ok := f.objects[k]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestOpen_Stdin(t *testing.T) {
	for _, ref := range []string{"", "-"} {
		in, err := Open(context.Background(), ref, Options{Stdin: strings.NewReader("hello\n")})
		if err != nil {
			t.Fatalf("Open(%q): %v", ref, err)
		}
		if string(in.Data) != "hello\n" || in.Label != "" || !in.Stdin {
			t.Errorf("Open(%q) = %+v", ref, in)
		}
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	in, err := Open(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(in.Data) != "a\nb\n" {
		t.Errorf("Data = %q", in.Data)
	}
	if in.Label != path || in.Stdin {
		t.Errorf("Label = %q, Stdin = %v", in.Label, in.Stdin)
	}

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), Options{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file err = %v, want ErrNotFound", err)
	}
}

func TestOpen_S3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"docs/notes/today.txt": "remote\n"}}
	opts := Options{s3Client: fake}

	in, err := Open(context.Background(), "s3://docs/notes/today.txt", opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(in.Data) != "remote\n" {
		t.Errorf("Data = %q", in.Data)
	}
	if in.Label != "s3://docs/notes/today.txt" {
		t.Errorf("Label = %q", in.Label)
	}
	if fake.gotKey != "docs/notes/today.txt" {
		t.Errorf("requested %q", fake.gotKey)
	}

	_, err = Open(context.Background(), "s3://docs/absent.txt", opts)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("absent object err = %v, want ErrNotFound", err)
	}
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"s3://bucket/key.txt", "bucket", "key.txt", false},
		{"s3://bucket/a/b/c.txt", "bucket", "a/b/c.txt", false},
		{"s3://bucket", "", "", true},
		{"s3://bucket/", "", "", true},
		{"s3://bucket/dir/", "", "", true},
		{"s3:///key", "", "", true},
		{"https://bucket/key", "", "", true},
	}
	for _, tt := range tests {
		bucket, key, err := ParseS3URI(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseS3URI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if bucket != tt.wantBucket || key != tt.wantKey {
			t.Errorf("ParseS3URI(%q) = %q, %q", tt.uri, bucket, key)
		}
	}
}
