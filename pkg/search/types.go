package search

// Filters maps option names to option values; it is sent verbatim as the "filters" object.
type Filters map[string]any

// Result is a single backend result object. Its shape belongs to the backend.
type Result map[string]any

// Request is the JSON body posted to the search endpoint.
type Request struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters"`
}

// Response is the JSON body returned by the search endpoint.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Results []Result `json:"results,omitempty"`
}

// NewRequest builds a request body; nil filters become an empty object.
func NewRequest(query string, filters Filters) Request {
	if filters == nil {
		filters = Filters{}
	}
	return Request{Query: query, Filters: filters}
}
