package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ===============================
// Transaction types / payment
// ===============================

type TransactionType string

const (
	TypeProduct TransactionType = "product"
	TypeService TransactionType = "service"
	TypeFiado   TransactionType = "fiado"
	TypeMixed   TransactionType = "mixed"
)

const (
	MethodDinheiro = "dinheiro"
	MethodCartao   = "cartao"
	MethodPix      = "pix"
	MethodFiado    = "fiado"
)

const (
	TxCompleted = "completed"
	TxPending   = "pending"

	FiadoPending = "pending"
	FiadoPaid    = "paid"
)

// ===============================
// Description fragments
// ===============================

// Fragment é um item da descrição de venda, na gramática
// "<qty>x <name>[ (<barber>)]". Um sufixo entre parênteses marca o
// fragmento como serviço; sem sufixo é produto. Atenção: um produto
// literalmente chamado "Shampoo (Grande)" seria classificado como
// serviço por essa heurística herdada.
type Fragment struct {
	Qty    int
	Name   string
	Barber string
}

func (f Fragment) IsService() bool {
	return f.Barber != ""
}

func (f Fragment) String() string {
	if f.Barber != "" {
		return fmt.Sprintf("%dx %s (%s)", f.Qty, f.Name, f.Barber)
	}
	return fmt.Sprintf("%dx %s", f.Qty, f.Name)
}

var fragmentRe = regexp.MustCompile(`^(\d+)x\s+(.+)$`)

// ParseFragment lê um fragmento; ok=false para texto fora da gramática.
func ParseFragment(s string) (Fragment, bool) {
	m := fragmentRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Fragment{}, false
	}

	qty, err := strconv.Atoi(m[1])
	if err != nil || qty <= 0 {
		return Fragment{}, false
	}

	name := strings.TrimSpace(m[2])
	barber := ""

	if strings.HasSuffix(name, ")") {
		if idx := strings.LastIndex(name, " ("); idx > 0 {
			barber = name[idx+2 : len(name)-1]
			name = strings.TrimSpace(name[:idx])
		}
	}

	return Fragment{Qty: qty, Name: name, Barber: barber}, true
}

type Description []Fragment

// ParseDescription separa a lista "2x Shampoo, 1x Corte (João)".
// Fragmentos fora da gramática são descartados.
func ParseDescription(s string) Description {
	var desc Description
	for _, part := range strings.Split(s, ",") {
		if f, ok := ParseFragment(part); ok {
			desc = append(desc, f)
		}
	}
	return desc
}

func (d Description) String() string {
	parts := make([]string, 0, len(d))
	for _, f := range d {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ", ")
}

// DetermineType classifica a transação pelo conteúdo da descrição:
// só serviços → service, só produtos → product, os dois → mixed.
// Descrição vazia ou não parseável cai no tipo informado pelo caller.
func DetermineType(description string, original TransactionType) TransactionType {
	desc := ParseDescription(description)
	if len(desc) == 0 {
		return original
	}

	hasService := false
	hasProduct := false
	for _, f := range desc {
		if f.IsService() {
			hasService = true
		} else {
			hasProduct = true
		}
	}

	switch {
	case hasService && hasProduct:
		return TypeMixed
	case hasService:
		return TypeService
	default:
		return TypeProduct
	}
}
