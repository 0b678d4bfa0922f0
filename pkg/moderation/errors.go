package moderation

import "errors"

// Errores centinela del núcleo de moderación. El orquestador los
// devuelve sin envolver efectos parciales: cuando una acción se rechaza
// con uno de estos errores, no se escribió nada en el ledger.
var (
	// ErrNotFound indica que el usuario o registro objetivo no existe
	ErrNotFound = errors.New("objetivo no encontrado")

	// ErrUnconfigured indica que falta un rol o canal requerido en la
	// configuración del guild
	ErrUnconfigured = errors.New("configuración incompleta")

	// ErrUnauthorized indica que el actor no tiene privilegios de
	// moderación
	ErrUnauthorized = errors.New("sin permisos de moderación")
)
