package usecase

import (
	"context"
	"fmt"
)

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

// Sequence roda as operações em ordem e para na primeira falha.
// O que já rodou fica como está: não há compensação.
type Sequence struct {
	operations []Operation
}

func NewSequence() *Sequence {
	return &Sequence{operations: []Operation{}}
}

func (s *Sequence) AddOperation(name string, fn func(context.Context) error) {
	s.operations = append(s.operations, Operation{name, fn})
}

func (s *Sequence) Len() int {
	return len(s.operations)
}

// Execute devolve quantas operações completaram antes do erro.
func (s *Sequence) Execute(ctx context.Context) (int, error) {
	for i, op := range s.operations {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("operation '%s' not started: %w", op.Name, err)
		}
		if err := op.Fn(ctx); err != nil {
			return i, fmt.Errorf("operation '%s' failed: %w (%d operations completed)", op.Name, err, i)
		}
	}
	return len(s.operations), nil
}
