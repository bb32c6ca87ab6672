// Package diagnostics agrupa las utilidades de trazabilidad de los envíos: identificadores de
// diagnóstico, redacción de datos sensibles y resúmenes acotados de respuestas.
package diagnostics

import (
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDPrefix prefijo de todos los identificadores de diagnóstico.
const IDPrefix = "DIAG-"

const randomSuffixLen = 6

// GenerateID genera un identificador de diagnóstico legible y probabilísticamente único:
// DIAG-<timestamp base36>-<sufijo aleatorio base36>, en mayúsculas.
// Debe generarse uno por intento (no por ciclo de envío) para trazar cada reintento.
func GenerateID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper(IDPrefix + ts + "-" + randomSuffix())
}

func randomSuffix() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).Text(36)
	if len(s) < randomSuffixLen {
		s = strings.Repeat("0", randomSuffixLen-len(s)) + s
	}
	return s[len(s)-randomSuffixLen:]
}
