package notify

// Publisher difunde cambios del dominio (ej: hub websocket).
// Los servicios aceptan nil y en ese caso no publican nada.
type Publisher interface {
	Publish(kind string, payload any)
}

// Publish es un helper nil-safe para los servicios.
func Publish(p Publisher, kind string, payload any) {
	if p == nil {
		return
	}
	p.Publish(kind, payload)
}
