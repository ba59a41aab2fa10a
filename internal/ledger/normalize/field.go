package normalize

// Outcome classifica o que aconteceu com um campo bruto durante a normalização
type Outcome int

const (
	// Accepted: o valor bruto foi reconhecido
	Accepted Outcome = iota
	// Defaulted: valor ausente ou desconhecido resolvido para o padrão (campo tolerante)
	Defaulted
	// Rejected: campo obrigatório inválido, o registro inteiro é recusado
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Defaulted:
		return "defaulted"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Field carrega o valor normalizado junto com a classificação e, se recusado, o motivo
type Field[T any] struct {
	Value   T
	Outcome Outcome
	Reason  string
}

func accept[T any](v T) Field[T] { return Field[T]{Value: v, Outcome: Accepted} }
func defaulted[T any](v T) Field[T] { return Field[T]{Value: v, Outcome: Defaulted} }

func reject[T any](reason string) Field[T] {
	return Field[T]{Outcome: Rejected, Reason: reason}
}

// OK é falso apenas para campos recusados
func (f Field[T]) OK() bool { return f.Outcome != Rejected }
