package core

import "strconv"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form parameters such as paths or lists.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single generation setting shown on the HUD.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the settings a generation run was started with.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider exposes a snapshot of the active settings.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// IntParam builds an integer parameter entry.
func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

// FloatParam builds a floating-point parameter entry.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 3, 64)}
}

// StringParam builds a free-form parameter entry.
func StringParam(key, label, value string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeString, Value: value}
}
