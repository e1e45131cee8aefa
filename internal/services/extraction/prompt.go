package extraction

import "fmt"

// promptPreamble instructs the model to return a bare JSON array of
// future-oriented claims and nothing else
const promptPreamble = `You are a financial analyst extracting predictions from video transcripts.

Extract every future-oriented factual claim from the transcript segment below.
Only include claims about what WILL happen. Ignore statements about the past,
general commentary, and opinions with no forward-looking content.

For each prediction return an object with these fields:
- "claim": the prediction restated as one clear sentence
- "asset": the asset or market the claim is about, or null
- "horizon_months": the number of months until the claim should resolve, or null
- "confidence": one of "low", "medium", "high"
- "type": one of "price", "direction", "relative performance", "macro"

Respond with a JSON array only. If the segment contains no predictions,
respond with [].

Transcript segment:
%s`

// BuildPrompt combines the fixed instruction preamble with one block's text
func BuildPrompt(blockText string) string {
	return fmt.Sprintf(promptPreamble, blockText)
}
