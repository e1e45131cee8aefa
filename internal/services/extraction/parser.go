package extraction

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/prophetlog/prediction-api/internal/models"
)

// ErrNoJSONArray indicates the model response held neither a JSON array nor a
// recognizable "nothing found" signal
var ErrNoJSONArray = errors.New("no JSON array found in response")

// arrayRegex greedily locates the first bracketed span in a response
var arrayRegex = regexp.MustCompile(`\[[\s\S]*\]`)

// ExtractedPrediction is one normalized prediction candidate parsed from a
// model response, before persistence
type ExtractedPrediction struct {
	Claim          string
	Asset          *string
	HorizonMonths  *int
	Confidence     models.Confidence
	PredictionType models.PredictionType
}

// ParseResponse turns a raw model response into zero or more normalized
// predictions. Parsing is deliberately permissive: individual bad values fall
// back to defaults and candidates with empty claims are dropped; only a
// response with no array at all (and no empty signal) is an error.
func ParseResponse(raw string) ([]ExtractedPrediction, error) {
	candidates, err := locateCandidates(raw)
	if err != nil {
		return nil, err
	}

	predictions := make([]ExtractedPrediction, 0, len(candidates))
	for _, candidate := range candidates {
		if pred, ok := normalize(candidate); ok {
			predictions = append(predictions, pred)
		}
	}
	return predictions, nil
}

// locateCandidates finds the array span and decodes it into loose key-value
// records. A missing span is only acceptable when the response signals that
// nothing was found.
func locateCandidates(raw string) ([]map[string]any, error) {
	span := arrayRegex.FindString(raw)
	if span == "" {
		if isEmptySignal(raw) {
			return nil, nil
		}
		return nil, ErrNoJSONArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(span), &elements); err != nil {
		if isEmptySignal(raw) {
			return nil, nil
		}
		return nil, ErrNoJSONArray
	}

	candidates := make([]map[string]any, 0, len(elements))
	for _, element := range elements {
		var candidate map[string]any
		if err := json.Unmarshal(element, &candidate); err != nil {
			// Non-object elements are skipped, not fatal
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// isEmptySignal recognizes the expected "nothing found" responses
func isEmptySignal(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "no prediction") || strings.Contains(raw, "[]")
}

// normalize maps one loose candidate onto typed fields with safe defaults,
// reporting false for candidates whose claim is empty
func normalize(candidate map[string]any) (ExtractedPrediction, bool) {
	claim, _ := candidate["claim"].(string)
	if strings.TrimSpace(claim) == "" {
		return ExtractedPrediction{}, false
	}

	pred := ExtractedPrediction{
		Claim:          claim,
		Confidence:     models.NormalizeConfidence(stringField(candidate, "confidence")),
		PredictionType: models.NormalizePredictionType(stringField(candidate, "type")),
	}

	if asset, ok := candidate["asset"].(string); ok && strings.TrimSpace(asset) != "" {
		pred.Asset = &asset
	}

	// Horizon is kept only when the model returned an actual number
	if horizon, ok := candidate["horizon_months"].(float64); ok {
		months := int(horizon)
		pred.HorizonMonths = &months
	}

	return pred, true
}

func stringField(candidate map[string]any, key string) string {
	value, _ := candidate[key].(string)
	return value
}
