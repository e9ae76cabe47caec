package order

import (
	"fmt"

	"github.com/jhoicas/textil-erp/internal/domain"
)

// Effect es un efecto lateral asociado a una transición.
type Effect string

// Efectos que ejecutan los casos de uso dentro de la transacción.
const (
	EffectReceiveStock      Effect = "RECEIVE_STOCK"
	EffectDeliverStock      Effect = "DELIVER_STOCK"
	EffectConsumeInputs     Effect = "CONSUME_INPUTS"
	EffectProduceOutputs    Effect = "PRODUCE_OUTPUTS"
	EffectStampReceivedDate Effect = "STAMP_RECEIVED_DATE"
	EffectStampStartDate    Effect = "STAMP_START_DATE"
	EffectStampCompletion   Effect = "STAMP_COMPLETION"
)

// Transition resultado de evaluar (from, to).
// NoOp indica que la orden ya estaba en el estado pedido: no se escribe nada.
type Transition struct {
	Effects []Effect
	NoOp    bool
}

// Has indica si la transición incluye el efecto.
func (t Transition) Has(e Effect) bool {
	for _, x := range t.Effects {
		if x == e {
			return true
		}
	}
	return false
}

// Machine es una tabla de transiciones para un tipo de estado.
type Machine[S ~string] struct {
	name   string
	states map[S]struct{}
	table  map[S]map[S][]Effect
}

// NewMachine crea una máquina vacía con los estados válidos.
func NewMachine[S ~string](name string, states ...S) *Machine[S] {
	m := &Machine[S]{
		name:   name,
		states: make(map[S]struct{}, len(states)),
		table:  make(map[S]map[S][]Effect),
	}
	for _, s := range states {
		m.states[s] = struct{}{}
	}
	return m
}

// Allow registra la arista from -> to con sus efectos.
func (m *Machine[S]) Allow(from, to S, effects ...Effect) *Machine[S] {
	if m.table[from] == nil {
		m.table[from] = make(map[S][]Effect)
	}
	m.table[from][to] = effects
	return m
}

// Valid indica si s es un estado conocido.
func (m *Machine[S]) Valid(s S) bool {
	_, ok := m.states[s]
	return ok
}

// Next evalúa la transición. Mismo estado => NoOp; arista inexistente => ErrInvalidTransition.
func (m *Machine[S]) Next(from, to S) (Transition, error) {
	if !m.Valid(to) {
		return Transition{}, domain.Invalid("estado %q desconocido para %s", to, m.name)
	}
	if from == to {
		return Transition{NoOp: true}, nil
	}
	effects, ok := m.table[from][to]
	if !ok {
		return Transition{}, fmt.Errorf("%w: %s %s -> %s", domain.ErrInvalidTransition, m.name, from, to)
	}
	out := make([]Effect, len(effects))
	copy(out, effects)
	return Transition{Effects: out}, nil
}

// Targets devuelve los estados alcanzables desde from.
func (m *Machine[S]) Targets(from S) []S {
	var out []S
	for to := range m.table[from] {
		out = append(out, to)
	}
	return out
}
