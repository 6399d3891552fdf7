package models

// OutcomeKind identifies the terminal state of one pipeline run.
type OutcomeKind string

const (
	OutcomeMissingParameters  OutcomeKind = "missing_parameters"
	OutcomeDownloadFailed     OutcomeKind = "download_failed"
	OutcomeNoSpeechRecognized OutcomeKind = "no_speech_recognized"
	OutcomeTickerNotFound     OutcomeKind = "ticker_not_found"
	OutcomeSimulationFailed   OutcomeKind = "simulation_failed"
	OutcomeSuccess            OutcomeKind = "success"
)

// Outcome represents the terminal state of one voice request. Exactly one of
// Result (on success) or ErrorMessage (otherwise) is populated. AudioPath
// points at the uploaded spoken response when one was delivered; it stays
// empty when synthesis or upload failed, which never invalidates the rest of
// the outcome.
type Outcome struct {
	Kind           OutcomeKind       `json:"kind"`
	ErrorMessage   string            `json:"error,omitempty"`
	RecognizedText string            `json:"recognized_text,omitempty"`
	Ticker         string            `json:"ticker,omitempty"`
	DisplayName    string            `json:"display_name,omitempty"`
	Result         *SimulationResult `json:"result,omitempty"`
	AudioPath      string            `json:"audio,omitempty"`
}

// IsSuccess reports whether the pipeline reached its success state.
func (o *Outcome) IsSuccess() bool { return o.Kind == OutcomeSuccess }
