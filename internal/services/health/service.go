package health

// Service encapsulates health-related checks.
type Service struct {
	name string
}

// NewService constructs a new health service.
func NewService(name string) *Service {
	if name == "" {
		name = "UniRise"
	}
	return &Service{name: name}
}

// Status returns a simple liveness payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Welcome returns the root banner.
func (s *Service) Welcome() map[string]string {
	return map[string]string{
		"message": "Welcome to " + s.name + " API",
		"status":  "operational",
	}
}
