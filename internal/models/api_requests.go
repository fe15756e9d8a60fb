package models

type RegisterClientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Platform string `json:"platform,omitempty" validate:"max=32"`
	Version  string `json:"version,omitempty" validate:"max=32"`
}

type RegisterClientResponse struct {
	ClientID string `json:"client_id"`
	Token    string `json:"token"`
}

type IngestResponse struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}
