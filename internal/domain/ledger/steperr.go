package ledger

import (
	"errors"
	"fmt"
)

// Step identifica qual passo de uma operação multi-linha falhou.
// O gateway não oferece transação multi-tabela para essas operações,
// então um erro no meio deixa estado parcial; quem chama precisa saber
// exatamente onde parou para conseguir reconciliar.
type Step string

const (
	StepClientLookup      Step = "client_lookup"
	StepClientCreate      Step = "client_create"
	StepClientUpdate      Step = "client_update"
	StepFiadoLookup       Step = "fiado_lookup"
	StepFiadoCreate       Step = "fiado_create"
	StepFiadoUpdate       Step = "fiado_update"
	StepFiadoDelete       Step = "fiado_delete"
	StepTransactionLookup Step = "transaction_lookup"
	StepTransactionSettle Step = "transaction_settle"
	StepTransactionDelete Step = "transaction_delete"
	StepStockRestore      Step = "stock_restore"
)

type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("ledger: step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func Fail(step Step, err error) error {
	return &StepError{Step: step, Err: err}
}

// FailedStep devolve o passo embutido no erro, se houver.
func FailedStep(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}
	return "", false
}
