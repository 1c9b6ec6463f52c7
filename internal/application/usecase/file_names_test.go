package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Amazon S3":                     "s3",
		"AWS Lambda":                    "aws_lambda",
		"Amazon CloudFront":             "cloudfront",
		"  Amazon EC2  ":                "ec2",
		"EC2 - Other":                   "ec2_-_other",
		"Amazon Simple Storage/Glacier": "simple_storage_glacier",
		"../etc/passwd":                 "etc_passwd",
		"Amazon.com Marketplace":        "amazon.com_marketplace",
		"サービス":                          "service",
		"":                              "service",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFileName(in), in)
	}
}

func TestReportFileNamesAreUnique(t *testing.T) {
	names := ReportFileNames([]string{"Amazon S3", "S3", "s3", "AWS Lambda", "run-summary"})
	assert.Equal(t, []string{"s3", "s3_2", "s3_3", "aws_lambda", "run-summary_2"}, names)
}

func TestReportFileNamesDeterministic(t *testing.T) {
	in := []string{"Amazon EC2", "EC2", "Amazon RDS"}
	assert.Equal(t, ReportFileNames(in), ReportFileNames(in))
}
