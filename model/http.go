package model

type GenerateRequestBody struct {
	Order       int   `json:"order"`
	MaxMeasures *int  `json:"maxMeasures"`
	MaxNotes    int   `json:"maxNotes"`
	Seed        int64 `json:"seed"`
}

type GenerateResponse struct {
	NumNotes int    `json:"numNotes"`
	Seed     int64  `json:"seed"`
	Notes    []Note `json:"notes"`
}
