package screens

type ViewportRequest struct {
	Width int `json:"width" validate:"gt=0"`
}

type PageRequest struct {
	Index int `json:"index" validate:"gte=0"`
}
