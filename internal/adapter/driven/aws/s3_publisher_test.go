package aws

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = string(body)
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

type fakeSTS struct {
	calls int
	err   error
}

func (f *fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil
}

func newFakes() (*fakeS3, *fakeSTS) {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}}, &fakeSTS{}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestPublishUploadsFile(t *testing.T) {
	s3c, stsc := newFakes()
	log, _ := test.NewNullLogger()
	pub := NewS3PublisherWithClients("reports", "/finops/monthly/", s3c, stsc, log)

	uri, err := pub.Publish(context.Background(), writeTemp(t, "s3.md", "# report"))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/finops/monthly/s3.md", uri)
	assert.Equal(t, "# report", s3c.objects["reports/finops/monthly/s3.md"])
	assert.Equal(t, "text/markdown; charset=utf-8", s3c.types["reports/finops/monthly/s3.md"])

	_, err = pub.Publish(context.Background(), writeTemp(t, "s3.pdf", "%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", s3c.types["reports/finops/monthly/s3.pdf"])
	assert.Equal(t, 1, stsc.calls, "identity is checked only once")
}

func TestPublishWithoutPrefix(t *testing.T) {
	s3c, stsc := newFakes()
	pub := NewS3PublisherWithClients("reports", "", s3c, stsc, logrus.New())

	uri, err := pub.Publish(context.Background(), writeTemp(t, "ec2.md", "x"))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/ec2.md", uri)
}

func TestPublishFailsWithoutCredentials(t *testing.T) {
	s3c, stsc := newFakes()
	stsc.err = errors.New("no credentials")
	pub := NewS3PublisherWithClients("reports", "", s3c, stsc, logrus.New())

	_, err := pub.Publish(context.Background(), writeTemp(t, "s3.md", "x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, stsc.err)
	assert.Empty(t, s3c.objects)
}

func TestPublishUploadError(t *testing.T) {
	s3c, stsc := newFakes()
	s3c.err = errors.New("access denied")
	pub := NewS3PublisherWithClients("reports", "", s3c, stsc, logrus.New())

	_, err := pub.Publish(context.Background(), writeTemp(t, "s3.md", "x"))
	assert.ErrorIs(t, err, s3c.err)
}

func TestPublishMissingFile(t *testing.T) {
	s3c, stsc := newFakes()
	pub := NewS3PublisherWithClients("reports", "", s3c, stsc, logrus.New())

	_, err := pub.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestNewS3PublisherRequiresBucket(t *testing.T) {
	_, err := NewS3Publisher(context.Background(), "", "", "", "", logrus.New())
	assert.Error(t, err)
}

func TestListProfiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".aws"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".aws", "credentials"), []byte("[default]\n[prod]\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".aws", "config"), []byte("[profile dev]\nregion = us-east-1\n"), 0o600))

	assert.Equal(t, []string{"default", "dev", "prod"}, ListProfiles())
}

func TestListProfilesFallsBackToDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Equal(t, []string{"default"}, ListProfiles())
}
