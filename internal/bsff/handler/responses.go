package handler

// SealedFieldsResponse lists sealed fields of a BSFF or of one packaging.
type SealedFieldsResponse struct {
	Fields []string `json:"fields"`
}
