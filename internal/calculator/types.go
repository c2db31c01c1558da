package calculator

import "mathengine-api/internal/mathengine"

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression" validate:"required,max=1024"`
}

// BatchRequest is the JSON body for POST /calculator/batch.
type BatchRequest struct {
	Expressions []string `json:"expressions" validate:"required,min=1,max=50,dive,max=1024"`
}

// BatchItem is one entry of a batch response. Result is null when the
// expression could not be evaluated.
type BatchItem struct {
	Input  string             `json:"input"`
	Result *mathengine.Result `json:"result"`
}

// BatchResponse is the JSON response for POST /calculator/batch.
type BatchResponse struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}
