package aws

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/sirupsen/logrus"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
)

// S3API é o subconjunto do cliente S3 usado pelo publisher.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// STSAPI é o subconjunto do cliente STS usado para validar as credenciais.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var contentTypes = map[string]string{
	".md":   "text/markdown; charset=utf-8",
	".pdf":  "application/pdf",
	".json": "application/json",
}

// S3PublisherImpl implementa o ReportPublisher enviando os arquivos para um bucket S3.
type S3PublisherImpl struct {
	bucket string
	prefix string
	s3     S3API
	sts    STSAPI
	log    logrus.FieldLogger

	mu        sync.Mutex
	accountID string
}

// NewS3Publisher carrega a configuração AWS do perfil informado e cria o publisher.
func NewS3Publisher(ctx context.Context, profile, region, bucket, prefix string, log logrus.FieldLogger) (*S3PublisherImpl, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	return NewS3PublisherWithClients(bucket, prefix, s3.NewFromConfig(cfg), sts.NewFromConfig(cfg), log), nil
}

// NewS3PublisherWithClients cria o publisher com clientes já construídos.
func NewS3PublisherWithClients(bucket, prefix string, s3Client S3API, stsClient STSAPI, log logrus.FieldLogger) *S3PublisherImpl {
	return &S3PublisherImpl{
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		s3:     s3Client,
		sts:    stsClient,
		log:    log,
	}
}

// AccountID valida as credenciais uma única vez e retorna a conta em uso.
func (p *S3PublisherImpl) AccountID(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accountID != "" {
		return p.accountID, nil
	}

	result, err := p.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	p.accountID = aws.ToString(result.Account)
	p.log.WithField("account", p.accountID).Debug("AWS credentials verified")
	return p.accountID, nil
}

// Publish envia o arquivo para s3://bucket/prefix/<nome do arquivo>.
func (p *S3PublisherImpl) Publish(ctx context.Context, localPath string) (string, error) {
	if _, err := p.AccountID(ctx); err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", localPath, err)
	}
	defer file.Close()

	key := p.objectKey(localPath)
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		input.ContentType = aws.String(ct)
	}

	if _, err := p.s3.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", key, p.bucket, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	p.log.WithField("uri", uri).Debug("report published")
	return uri, nil
}

func (p *S3PublisherImpl) objectKey(localPath string) string {
	name := filepath.Base(localPath)
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

var _ repository.ReportPublisher = (*S3PublisherImpl)(nil)

// ListProfiles lê os perfis configurados em ~/.aws/credentials e ~/.aws/config.
func ListProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}

	credentialsPath := filepath.Join(homeDir, ".aws", "credentials")
	configPath := filepath.Join(homeDir, ".aws", "config")

	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}
