package utils

import (
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
)

func TestDBLatencyLineWithoutDatabase(t *testing.T) {
	if got := dbLatencyLine(nil); got != "📀 Base de datos: sin conexión" {
		t.Errorf("sin instancia: %q", got)
	}
}

func TestDBLatencyLineDisconnected(t *testing.T) {
	// Instancia sin conexión: Ping falla y la línea no muestra latencia
	if got := dbLatencyLine(&database.Database{}); got != "📀 Base de datos: sin conexión" {
		t.Errorf("sin conexión: %q", got)
	}
}
