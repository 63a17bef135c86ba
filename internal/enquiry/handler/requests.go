package handler

// fieldUpdate is one field assignment in a PATCH request. Updates are a list,
// not a map: apply order matters because changing a trigger field (activity
// type, entity type) clears its dependent field.
type fieldUpdate struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type updateFieldsRequest struct {
	Fields []fieldUpdate `json:"fields"`
}
