package handler

// SealedFieldsResponse is the body of GET /bsdas/{id}/sealed-fields.
type SealedFieldsResponse struct {
	Fields []string `json:"fields"`
}
