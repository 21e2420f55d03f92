package dto

type HomeOutput struct {
	Body struct {
		Message   string                       `json:"message"`
		Endpoints map[string]map[string]string `json:"endpoints"`
	}
}
