package attendance

type ClockResponse struct {
	Message string  `json:"message"`
	Record  *Record `json:"record"`
}
