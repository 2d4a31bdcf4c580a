package model

type ScaleResponse struct {
	Name    string `json:"name"`
	Pattern []int  `json:"pattern"`
	Example string `json:"example"`
}

type TrackKeyResult struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	NumNotes int    `json:"notes"`
	Key      *int   `json:"key"`
	KeyName  string `json:"key_name,omitempty"`
}

type DetectResponse struct {
	Key     *int             `json:"key"`
	KeyName string           `json:"key_name,omitempty"`
	Tracks  []TrackKeyResult `json:"tracks"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
