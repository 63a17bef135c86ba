package validation

// ErrorSet maps a field name to a single human-readable message. At most one
// message per field; validation errors are data returned to the caller, never
// panics or wrapped exceptions.
type ErrorSet map[string]string

// Add records a message for a field unless one is already present.
func (e ErrorSet) Add(field, message string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = message
}

// Has reports whether the field carries an error.
func (e ErrorSet) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Merge copies every entry of other into e, keeping existing entries.
func (e ErrorSet) Merge(other ErrorSet) {
	for field, message := range other {
		e.Add(field, message)
	}
}

// Fields returns the erroring field names. Order is unspecified; callers that
// need step order go through the flow package.
func (e ErrorSet) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	return fields
}
