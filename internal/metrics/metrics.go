// Package metrics provides Prometheus metrics for the skill webhook.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bitbucket.org/sotavant/skill-protocol/internal/models"
)

// No user_id or session_id labels: they are unbounded.
var (
	// TurnsTotal counts decoded turns by canonical action token.
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_turns_total",
		Help: "Total number of decoded turns, by action.",
	}, []string{"action"})

	// DecodeErrorsTotal counts rejected payloads by top-level field.
	DecodeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_decode_errors_total",
		Help: "Total number of payloads that failed to decode, by field.",
	}, []string{"field"})

	// CommandsTotal counts emitted response commands by command type.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_commands_total",
		Help: "Total number of response commands sent, by command type.",
	}, []string{"command_type"})
)

// ObserveTurn records a decoded turn. Unrecognized actions count as UNKNOWN.
func ObserveTurn(in models.BusinessInput) {
	TurnsTotal.WithLabelValues(in.ActionType().Token()).Inc()
}

// ObserveDecodeError records err, labelled with the top-level field it names.
func ObserveDecodeError(err error) {
	field := "payload"
	var de *models.DecodeError
	if errors.As(err, &de) && de.Field != "" {
		field = topLevel(de.Field)
	}
	DecodeErrorsTotal.WithLabelValues(field).Inc()
}

// ObserveOutput records the commands of an encoded reply.
func ObserveOutput(out *models.BusinessOutput) {
	for _, cmd := range out.Commands() {
		label := "other"
		if t, ok := cmd.CommandType(); ok {
			label = t.Token()
		}
		CommandsTotal.WithLabelValues(label).Inc()
	}
}

func topLevel(path string) string {
	for i, r := range path {
		if r == '.' || r == '[' {
			return path[:i]
		}
	}
	return path
}
