package engine

// Column describes one table column: the record key it reads and the label shown in the header.
type Column struct {
	Key   string `json:"key"   yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Record is one usage row as delivered by the API, keyed by column key.
// Values are whatever the JSON decoder produced: strings, float64 numbers, bools or nil.
type Record map[string]any

// Snapshot is the data a dashboard starts from: the resource types offered by the
// filter and the unfiltered records.
type Snapshot struct {
	Resources []string `json:"resources"`
	Records   []Record `json:"records"`
}

// DefaultColumns returns the columns shown by the dashboard, in display order.
// A fresh slice is returned on every call so callers may not mutate a shared copy.
func DefaultColumns() []Column {
	return []Column{
		{Key: "ConsumedQuantity", Label: "Consumed Quantity"},
		{Key: "Cost", Label: "Cost"},
		{Key: "Date", Label: "Date"},
		{Key: "InstanceId", Label: "Instance ID"},
		{Key: "MeterCategory", Label: "Meter Category"},
		{Key: "ResourceGroup", Label: "Resource Group"},
		{Key: "ResourceLocation", Label: "Resource Location"},
		{Key: "UnitOfMeasure", Label: "Unit of Measure"},
		{Key: "Location", Label: "Location"},
		{Key: "ServiceName", Label: "Service Name"},
	}
}

// ColumnKeys returns the keys of the given columns in order.
func ColumnKeys(columns []Column) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

// FindColumn returns the index of the column with the given key, or -1.
func FindColumn(columns []Column, key string) int {
	for i, c := range columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}
