package batch

import (
	"errors"
	"fmt"

	coil "Coil/internal/calc/coil"
)

const MaxItems = 500

var (
	ErrNoItems      = errors.New("no items")
	ErrTooManyItems = fmt.Errorf("more than %d items", MaxItems)
)

type CoilBatchInput struct {
	Items []coil.Input `json:"items"`
}

type CoilBatchResult struct {
	Results []coil.Result `json:"results"`
}

// ItemError reports which item of a batch failed.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// CalculateCoil runs every item through the operator limits and the
// calculator. The first failing item fails the whole batch.
func CalculateCoil(in CoilBatchInput) (CoilBatchResult, error) {
	if len(in.Items) == 0 {
		return CoilBatchResult{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return CoilBatchResult{}, ErrTooManyItems
	}
	out := CoilBatchResult{Results: make([]coil.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := coil.DefaultLimits.CalculateChecked(item)
		if err != nil {
			return CoilBatchResult{}, &ItemError{Index: i, Err: err}
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
