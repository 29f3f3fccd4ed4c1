package service

import (
	"io"
	"strings"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

const (
	awsAccessKeyPrefix = "AKIA"
	// awsAccessKeyBytes renders as 20 uppercase hex characters.
	awsAccessKeyBytes = 10
	// awsSecretKeyBytes renders as 40 base64url characters.
	awsSecretKeyBytes = 30
	awsDefaultRegion  = "us-east-1"
)

type awsKeyGenerator struct{}

// NewAWSKeyGenerator creates a generator for fake AWS access key pairs shaped like real
// IAM user keys.
func NewAWSKeyGenerator() Generator {
	return &awsKeyGenerator{}
}

func (g *awsKeyGenerator) Generate(random io.Reader, _ GenerateRequest) (domain.Metadata, error) {
	keySuffix, err := randomHex(random, awsAccessKeyBytes)
	if err != nil {
		return nil, err
	}
	secret, err := randomURLSafe(random, awsSecretKeyBytes)
	if err != nil {
		return nil, err
	}

	creds := domain.AWSCredentials{
		AccessKeyID:     awsAccessKeyPrefix + strings.ToUpper(keySuffix),
		SecretAccessKey: secret,
		Region:          awsDefaultRegion,
	}
	return creds.Metadata(), nil
}
