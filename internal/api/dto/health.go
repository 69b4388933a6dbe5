package dto

type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type ServiceInfoResponse struct {
	Service string `json:"service"`
	Env     string `json:"env"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
