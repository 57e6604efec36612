package provider

import (
	"fmt"
	"time"

	"content-provider/models"
)

// OperationKind names a mutating batch operation
type OperationKind string

const (
	OpInsert OperationKind = "insert"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// Operation is one entry of a batch. Values is ignored for deletes.
type Operation struct {
	Kind    OperationKind
	Address string
	Values  models.Cheese
}

// NewInsert builds an insert operation
func NewInsert(address string, cheese models.Cheese) Operation {
	return Operation{Kind: OpInsert, Address: address, Values: cheese}
}

// NewUpdate builds an update operation
func NewUpdate(address string, cheese models.Cheese) Operation {
	return Operation{Kind: OpUpdate, Address: address, Values: cheese}
}

// NewDelete builds a delete operation
func NewDelete(address string) Operation {
	return Operation{Kind: OpDelete, Address: address}
}

// Result is the outcome of one batch operation. Address is set for
// inserts, Count for updates and deletes.
type Result struct {
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Count   int64  `json:"count" yaml:"count"`
}

// ApplyBatch runs ops in order inside one store transaction. Either all
// operations are applied or, on the first error, none are. A zero count
// is not an error. One notification on the collection address follows a
// successful commit.
func (p *Provider) ApplyBatch(ops []Operation) (results []Result, err error) {
	start := time.Now()
	defer func() {
		p.logCall("apply_batch", p.router.CollectionAddress(), start, int64(len(results)), err)
	}()

	// Nothing to apply, nothing changed
	if len(ops) == 0 {
		return []Result{}, nil
	}

	tx, err := p.store.Begin()
	if err != nil {
		return nil, storeFailure("begin", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			p.logger.Error("batch rollback failed", "error", rbErr)
		}
	}()

	results = make([]Result, 0, len(ops))
	for i, op := range ops {
		result, err := p.apply(tx, op)
		if err != nil {
			return nil, &BatchError{Index: i, Kind: op.Kind, Err: err}
		}
		results = append(results, result)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure("commit", err)
	}
	committed = true

	p.notifier.Notify(p.router.CollectionAddress())
	return results, nil
}

func (p *Provider) apply(s CheeseStore, op Operation) (Result, error) {
	route, err := p.router.Resolve(op.Address)
	if err != nil {
		return Result{}, err
	}

	switch op.Kind {
	case OpInsert:
		address, err := insert(s, route, op.Values)
		return Result{Address: address}, err
	case OpUpdate:
		count, err := update(s, route, op.Values)
		return Result{Count: count}, err
	case OpDelete:
		count, err := deleteByID(s, route)
		return Result{Count: count}, err
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Kind)
	}
}
