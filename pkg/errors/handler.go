// Package errors implementa el sistema anti-crash del bot: un contador
// de errores con reporte a webhook y apagado automático cuando el
// proceso acumula demasiados fallos en poco tiempo.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// ErrorHandler cuenta errores y dispara el apagado de emergencia
type ErrorHandler struct {
	errorCount    int32
	webhookURL    string
	stopChan      chan struct{}
	stopOnce      sync.Once
	shutdownFunc  func()
	maxErrors     int32
	resetInterval time.Duration
	checkInterval time.Duration
}

// ReportErrorOptions contiene los datos de un reporte de error
type ReportErrorOptions struct {
	Error   string
	Message string
}

var (
	handler *ErrorHandler
	once    sync.Once
)

// Init inicializa el manejador global de errores
func Init(webhookURL string, shutdownFunc func()) *ErrorHandler {
	once.Do(func() {
		handler = NewErrorHandler(webhookURL, shutdownFunc)
	})
	return handler
}

// Get devuelve el manejador global
func Get() *ErrorHandler {
	return handler
}

// NewErrorHandler crea un manejador y arranca sus goroutines de control
func NewErrorHandler(webhookURL string, shutdownFunc func()) *ErrorHandler {
	h := &ErrorHandler{
		webhookURL:    webhookURL,
		stopChan:      make(chan struct{}),
		shutdownFunc:  shutdownFunc,
		maxErrors:     15,
		resetInterval: 5 * time.Second,
		checkInterval: 1 * time.Second,
	}
	h.start()
	return h
}

func (h *ErrorHandler) start() {
	// Reinicio periódico del contador
	go func() {
		ticker := time.NewTicker(h.resetInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				atomic.StoreInt32(&h.errorCount, 0)
			case <-h.stopChan:
				return
			}
		}
	}()

	// Vigilancia de errores excesivos
	go func() {
		ticker := time.NewTicker(h.checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if atomic.LoadInt32(&h.errorCount) > h.maxErrors {
					logger.Warn("Se detectó un número demasiado alto de errores. Apagando...", "AntiCrash")

					h.Report(ReportErrorOptions{
						Error:   "Critical Error",
						Message: "Número inusual de errores. Apagando...",
					})

					if h.shutdownFunc != nil {
						h.shutdownFunc()
					}
					os.Exit(1)
				}
			case <-h.stopChan:
				return
			}
		}
	}()
}

// Stop detiene las goroutines de control
func (h *ErrorHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

// IncrementError suma uno al contador de errores
func (h *ErrorHandler) IncrementError() {
	count := atomic.AddInt32(&h.errorCount, 1)
	logger.Error(fmt.Sprintf("Contador de errores: %d", count), "AntiCrash")
}

// HandlePanic registra un pánico recuperado
func (h *ErrorHandler) HandlePanic(recovered interface{}) {
	h.IncrementError()
	logger.Error(fmt.Sprintf("Pánico recuperado: %v", recovered), "AntiCrash")
}

// Report envía un reporte al webhook de errores, best-effort
func (h *ErrorHandler) Report(data ReportErrorOptions) {
	if h.webhookURL == "" {
		return
	}

	embed := map[string]interface{}{
		"author": map[string]string{
			"name": fmt.Sprintf("Error %s", data.Error),
		},
		"description": data.Message,
		"color":       0xFF0000,
		"footer": map[string]string{
			"text": "PancyGuard Go",
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}
	payload := map[string]interface{}{
		"embeds": []interface{}{embed},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(h.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo enviar el reporte de error: %v", err), "AntiCrash")
		return
	}
	resp.Body.Close()
}

// RecoverMiddleware devuelve una función de recuperación para defer
func RecoverMiddleware() func() {
	return func() {
		if r := recover(); r != nil {
			if handler != nil {
				handler.HandlePanic(r)
			} else {
				logger.Error(fmt.Sprintf("Pánico recuperado (sin handler): %v", r), "AntiCrash")
			}
		}
	}
}
