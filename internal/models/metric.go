package models

// Metric is a single named value inside a metric group
type Metric struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Hint  string `json:"hint,omitempty" yaml:"hint,omitempty"` // Short explanation shown next to the value
}

// MetricGroup is an ordered collection of related metrics
type MetricGroup struct {
	Name    string   `json:"name" yaml:"name"`
	Metrics []Metric `json:"metrics" yaml:"metrics"`
}

// GroupNames returns the names of the groups in their original order
func GroupNames(groups []MetricGroup) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}
