// Package config resolves the per-function resource names. Each Lambda reads
// only the keys it needs, once at cold start, and passes the values to its
// constructors.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Environment keys. The table keys are lower case because the stack that
// deploys these functions sets them that way.
const (
	KeyDecksTable  = "decks_table_name"
	KeyCardsTable  = "cards_table_name"
	KeyStreamName  = "DATA_STREAM_NAME"
	KeyParamPrefix = "PARAM_PREFIX"
)

// ParamGetter looks up a named parameter.
type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Resolver reads values from the environment and falls back to parameters
// stored under prefix when one is configured.
type Resolver struct {
	lookup LookupFunc
	params ParamGetter
	prefix string
}

// NewResolver builds a Resolver. params may be nil when prefix is empty.
func NewResolver(lookup LookupFunc, params ParamGetter, prefix string) (*Resolver, error) {
	if lookup == nil {
		return nil, errors.New("config: lookup must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix != "" && params == nil {
		return nil, errors.New("config: param getter is required when a prefix is set")
	}
	return &Resolver{lookup: lookup, params: params, prefix: prefix}, nil
}

// FromEnvironment returns a Resolver over the process environment. When
// PARAM_PREFIX is set, missing keys are read from SSM using awsCfg.
func FromEnvironment(awsCfg aws.Config) (*Resolver, error) {
	prefix, _ := os.LookupEnv(KeyParamPrefix)
	if strings.TrimSpace(prefix) == "" {
		return NewResolver(os.LookupEnv, nil, "")
	}
	store, err := NewParamStore(ssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, err
	}
	return NewResolver(os.LookupEnv, store, prefix)
}

// Resolve returns the non-empty value for key.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, error) {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	if r.prefix == "" {
		return "", fmt.Errorf("config: %s is not set", key)
	}
	v, err := r.params.GetParameter(ctx, r.prefix+"/"+key)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", key, err)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("config: %s is empty in parameter store", key)
	}
	return v, nil
}
