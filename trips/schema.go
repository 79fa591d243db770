package trips

// CreateTripInput is the payload for POST /trips.
type CreateTripInput struct {
	Name      string   `json:"name" binding:"required,min=2"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// UpdateTripInput is the payload for PATCH /trips/:id. Every field is
// optional; only the ones present are applied.
type UpdateTripInput struct {
	Name      *string  `json:"name,omitempty"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// AddMemberInput is the payload for POST /trips/:id/members.
type AddMemberInput struct {
	Username string `json:"username" binding:"required"`
}
