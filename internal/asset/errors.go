package asset

import (
	"errors"
	"fmt"
)

// ErrAssetLoad matches every load failure via errors.Is.
var ErrAssetLoad = errors.New("asset load failed")

// Stage names the step a load failed in.
type Stage string

const (
	StageRetrieve Stage = "retrieve"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// LoadError describes a failed load of Resource.
type LoadError struct {
	Resource string
	Stage    Stage
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Resource, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrAssetLoad) true for any *LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrAssetLoad
}
