package models

// Wire types for the Dialogflow-style fulfillment webhook. The NLU
// platform POSTs a WebhookRequest each turn and always expects an HTTP
// 200 WebhookResponse back, whatever happens server-side.

// WebhookIntent identifies the matched intent.
type WebhookIntent struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
}

// WebhookContext is a caller-echoed conversation context. Its name is
// always "<session>/contexts/<stage>"; handlers match on the stage
// suffix only. Parameters round-trip through JSON, so values arrive as
// string, float64, []any or map[string]any.
type WebhookContext struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

// WebhookQueryResult carries the NLU output for one turn.
type WebhookQueryResult struct {
	QueryText      string           `json:"queryText,omitempty"`
	Parameters     map[string]any   `json:"parameters"`
	Intent         WebhookIntent    `json:"intent"`
	OutputContexts []WebhookContext `json:"outputContexts"`
	LanguageCode   string           `json:"languageCode,omitempty"`
}

// WebhookRequest is the inbound fulfillment call.
type WebhookRequest struct {
	ResponseID  string             `json:"responseId,omitempty"`
	Session     string             `json:"session"`
	QueryResult WebhookQueryResult `json:"queryResult"`
}

// WebhookResponse is the reply utterance plus the next context set.
type WebhookResponse struct {
	FulfillmentText string           `json:"fulfillmentText"`
	OutputContexts  []WebhookContext `json:"outputContexts,omitempty"`
}
