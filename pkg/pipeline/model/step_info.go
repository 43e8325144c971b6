package model

// Operation names a step operation run by a pipeline.
type Operation string

const (
	FitOperation          Operation = "fit"
	TransformOperation    Operation = "transform"
	PredictOperation      Operation = "predict"
	PredictProbaOperation Operation = "predict_proba"
)

// StepInfo describes a step of a pipeline instance.
type StepInfo struct {
	Alias    string
	TypeName string
	Position int
	Terminal bool
}

// StartStep and EndStep mark both ends of a chain. Their aliases contain the nested separator, so no step alias
// can take them.
var (
	StartStep = &StepInfo{Alias: "__start", Position: -1}
	EndStep   = &StepInfo{Alias: "__end", Position: -1}
)
