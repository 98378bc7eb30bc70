package metrics

// Dimension names and values the Store attaches on its own. Callers
// should not supply these slots themselves; the Store owns them.
const (
	// DimensionModelName tags a metric with the model that produced it.
	DimensionModelName = "ModelName"

	// DimensionLevel tags a metric with its reporting level.
	DimensionLevel = "Level"

	// LevelModel marks metrics tied to a request handled by a model.
	LevelModel = "Model"

	// LevelError marks metrics recorded without a request context.
	LevelError = "Error"

	// LevelHost marks host-wide system metrics.
	LevelHost = "Host"
)

// Dimension is a named tag attached to a metric for downstream
// grouping and filtering.
type Dimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewDimension returns a Dimension with the given name and value.
func NewDimension(name, value string) Dimension {
	return Dimension{Name: name, Value: value}
}

// String renders the dimension as "Name:Value", the form used both in
// emitted metric lines and in the Store's dedup key.
func (d Dimension) String() string {
	return d.Name + ":" + d.Value
}
