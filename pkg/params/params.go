// Package params reads configuration values from AWS Systems Manager
// Parameter Store, the place the bridge looks for shared settings like the
// table-store bucket name.
package params

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ErrParameterNotFound is returned when the requested key has no value.
var ErrParameterNotFound = errors.New("parameter not found")

// SSMAPI is the slice of the SSM client the store uses.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Store reads parameters by key.
type Store struct {
	api SSMAPI
}

// New creates a parameter store client from an AWS config.
func New(cfg awssdk.Config) *Store {
	return &Store{api: ssm.NewFromConfig(cfg)}
}

// NewWithAPI creates a parameter store client over an explicit API.
func NewWithAPI(api SSMAPI) *Store {
	return &Store{api: api}
}

// Get returns the value stored under key, decrypting secure strings.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           awssdk.String(key),
		WithDecryption: awssdk.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", ErrParameterNotFound
		}
		return "", fmt.Errorf("get parameter %q: %w", key, err)
	}
	return awssdk.ToString(out.Parameter.Value), nil
}

// GetWithDefault returns the value under key, or def when the key is absent.
func (s *Store) GetWithDefault(ctx context.Context, key, def string) (string, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrParameterNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
