package iris

import (
	"sort"

	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// LatestAttempt devuelve el intento más reciente: mayor Timestamp; en empate, mayor Seq; en
// empate de Seq, el que aparece después en el slice. nil si no hay intentos.
func LatestAttempt(attempts []*entity.AttemptEntry) *entity.AttemptEntry {
	var latest *entity.AttemptEntry
	for _, a := range attempts {
		if a == nil {
			continue
		}
		if latest == nil || !isBefore(a, latest) {
			latest = a
		}
	}
	return latest
}

// isBefore indica si a es estrictamente anterior a b.
func isBefore(a, b *entity.AttemptEntry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.Seq < b.Seq
}

// DeriveStatus estado del documento según su último intento: DRAFT sin intentos, SUCCESS si
// IRIS lo aceptó, FAILED ante un rechazo definitivo y UNKNOWN cuando no se sabe si llegó.
func DeriveStatus(attempts []*entity.AttemptEntry) string {
	latest := LatestAttempt(attempts)
	if latest == nil {
		return entity.DocumentStatusDraft
	}
	return StatusFromOutcome(latest.Outcome)
}

// StatusFromOutcome traduce el resultado de un intento a estado de documento.
func StatusFromOutcome(outcome string) string {
	switch outcome {
	case entity.OutcomeSuccess:
		return entity.DocumentStatusSuccess
	case entity.OutcomeValidationError, entity.OutcomeAuthError, entity.OutcomeDuplicateError:
		return entity.DocumentStatusFailed
	default:
		return entity.DocumentStatusUnknown
	}
}

// SortLatestFirst ordena in situ: Timestamp descendente y Seq descendente en empate.
func SortLatestFirst(attempts []*entity.AttemptEntry) {
	sort.SliceStable(attempts, func(i, j int) bool {
		return isBefore(attempts[j], attempts[i])
	})
}
