package cms

// Response is the CMS catalog export. Tours and destinations arrive as
// loosely-schemed objects; domain.Normalize owns the field coercion so
// the wire types stay raw maps.
type Response struct {
	Tours        []map[string]any `json:"tours"`
	Destinations []map[string]any `json:"destinations"`
	Meta         Meta             `json:"meta"`
}

// Meta holds export metadata.
type Meta struct {
	Total       int    `json:"total"`
	GeneratedAt string `json:"generated_at"`
}
