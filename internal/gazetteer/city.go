package gazetteer

// City is a single gazetteer record. Records are immutable once loaded; the
// offline import job that builds the artifact is the sole writer. Name and
// Country are always present, coordinates and region may be absent for
// low-confidence entries.
type City struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Country    string   `json:"country"` // ISO 3166-1 alpha-2
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Population int64    `json:"population"`
	Region     *string  `json:"region"`
}
