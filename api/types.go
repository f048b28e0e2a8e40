package api

type StartSessionRequest struct {
	ReservationID string `json:"reservation_id"`
	ResourceID    string `json:"resource_id"`
	UserID        string `json:"user_id"`
	Date          string `json:"date"`
	SlotStart     int    `json:"slot_start"`
	SlotEnd       int    `json:"slot_end"`
}

type Session struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id,omitempty"`
	ResourceID    string `json:"resource_id"`
	UserID        string `json:"user_id"`
	Status        string `json:"status"`
	StartedAt     string `json:"started_at"`
	EndedAt       string `json:"ended_at,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
