// Package logger implementa el sistema de logs del bot: consola con
// colores, archivos rotables en ./logs y espejo opcional a un webhook
// de Discord para errores.
package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel representa la severidad de un mensaje
type LogLevel int

const (
	LevelCritical LogLevel = iota
	LevelError
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
	LevelSystem
)

// String devuelve la etiqueta del nivel
func (l LogLevel) String() string {
	switch l {
	case LevelCritical:
		return "CRITICAL"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelSuccess:
		return "SUCCESS"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelSystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// Color devuelve el código ANSI del nivel para la consola
func (l LogLevel) Color() string {
	switch l {
	case LevelCritical:
		return "\033[1;31m"
	case LevelError:
		return "\033[31m"
	case LevelWarn:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	case LevelInfo:
		return "\033[36m"
	case LevelDebug:
		return "\033[35m"
	case LevelSystem:
		return "\033[34m"
	default:
		return "\033[0m"
	}
}

// DiscordColor devuelve el color de embed para el espejo webhook
func (l LogLevel) DiscordColor() int {
	switch l {
	case LevelCritical, LevelError:
		return 0xFF0000
	case LevelWarn:
		return 0xFFFF00
	case LevelSuccess:
		return 0x00FF00
	case LevelSystem:
		return 0x808080
	default:
		return 0x0000FF
	}
}

// toLogrus mapea nuestros niveles a los de logrus para los archivos
func (l LogLevel) toLogrus() logrus.Level {
	switch l {
	case LevelCritical:
		return logrus.FatalLevel
	case LevelError:
		return logrus.ErrorLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

const colorReset = "\033[0m"

// Logger escribe a consola, archivo y webhook
type Logger struct {
	file            *logrus.Logger
	logFile         *os.File
	errorWebhookURL string
	mu              sync.Mutex
}

var (
	global *Logger
	once   sync.Once
)

// Init inicializa el logger global
func Init(errorWebhook string) *Logger {
	once.Do(func() {
		global = New(errorWebhook)
	})
	return global
}

// Get devuelve el logger global, creándolo sin webhook si hace falta
func Get() *Logger {
	once.Do(func() {
		global = New("")
	})
	return global
}

// New crea un Logger que escribe en ./logs/guard.log
func New(errorWebhook string) *Logger {
	l := &Logger{
		file:            logrus.New(),
		errorWebhookURL: errorWebhook,
	}

	l.file.SetLevel(logrus.DebugLevel)
	l.file.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	logsDir := filepath.Join(".", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Printf("Error creando directorio de logs: %v\n", err)
	}

	f, err := os.OpenFile(filepath.Join(logsDir, "guard.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error abriendo archivo de log: %v\n", err)
		l.file.SetOutput(os.Stderr)
	} else {
		l.logFile = f
		l.file.SetOutput(f)
	}

	return l
}

func (l *Logger) log(level LogLevel, message, source string) {
	l.mu.Lock()
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Printf("[%s] [%s%s%s] [%s]: %s\n",
		timestamp, level.Color(), level.String(), colorReset, source, message)
	l.mu.Unlock()

	l.file.WithField("source", source).Log(level.toLogrus(), message)

	if level <= LevelError && l.errorWebhookURL != "" {
		go l.sendToWebhook(level, message, source)
	}
}

// sendToWebhook espeja errores al webhook de Discord, best-effort
func (l *Logger) sendToWebhook(level LogLevel, message, source string) {
	embed := map[string]interface{}{
		"title":       fmt.Sprintf("[%s] %s", level.String(), source),
		"description": fmt.Sprintf("```%s```", message),
		"color":       level.DiscordColor(),
		"timestamp":   time.Now().Format(time.RFC3339),
	}
	payload := map[string]interface{}{
		"embeds": []interface{}{embed},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(l.errorWebhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close cierra el archivo de log
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}

// Critical registra un mensaje crítico
func (l *Logger) Critical(message, source string) { l.log(LevelCritical, message, source) }

// Error registra un error
func (l *Logger) Error(message, source string) { l.log(LevelError, message, source) }

// Warn registra una advertencia
func (l *Logger) Warn(message, source string) { l.log(LevelWarn, message, source) }

// Success registra una operación exitosa
func (l *Logger) Success(message, source string) { l.log(LevelSuccess, message, source) }

// Info registra un mensaje informativo
func (l *Logger) Info(message, source string) { l.log(LevelInfo, message, source) }

// Debug registra un mensaje de depuración
func (l *Logger) Debug(message, source string) { l.log(LevelDebug, message, source) }

// System registra un mensaje del sistema
func (l *Logger) System(message, source string) { l.log(LevelSystem, message, source) }

// Funciones de paquete sobre el logger global

func Critical(message, source string) { Get().Critical(message, source) }
func Error(message, source string)    { Get().Error(message, source) }
func Warn(message, source string)     { Get().Warn(message, source) }
func Success(message, source string)  { Get().Success(message, source) }
func Info(message, source string)     { Get().Info(message, source) }
func Debug(message, source string)    { Get().Debug(message, source) }
func System(message, source string)   { Get().System(message, source) }
