package services

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/itamarh/voicedca/internal/models"
)

// RecordingStore is the remote namespace holding caller recordings and
// spoken responses.
type RecordingStore interface {
	Download(ctx context.Context, remotePath string) ([]byte, error)
	Upload(ctx context.Context, remotePath string, data []byte) error
	ResponsePath(phone string) string
}

// Transcriber turns a staged audio file into recognized text. An empty
// string means no confident transcription, not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Synthesizer turns narration text into playback-ready audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TickerResolver maps recognized text to a trading symbol and narration
// label.
type TickerResolver interface {
	Resolve(recognizedText string) (symbol, displayName string, ok bool)
}

// Simulator runs the DCA return computation.
type Simulator interface {
	SimulateDCA(ctx context.Context, symbol, startDate string, startAmount, recurringAmount float64, intervalDays int) (*models.SimulationResult, *models.SimulationError)
}

// PipelineRequest carries the parameters of one inbound voice request.
type PipelineRequest struct {
	CallbackPhone string
	RecordingPath string
	StartDate     string
	StartAmount   float64
	MonthlyAmount float64
	IntervalDays  int
}

// PipelineService sequences one request end to end: validate, download the
// recording, transcribe, resolve a ticker, simulate, respond. Every stage
// can fail independently and degrades to a well-defined terminal outcome;
// nothing here panics a request. The service holds no mutable state, so any
// number of requests may run concurrently through one instance.
type PipelineService struct {
	store       RecordingStore
	transcriber Transcriber
	synthesizer Synthesizer
	resolver    TickerResolver
	simulator   Simulator
	logger      *logrus.Logger
}

// NewPipelineService creates a new request pipeline over the given
// collaborators.
func NewPipelineService(store RecordingStore, transcriber Transcriber, synthesizer Synthesizer, resolver TickerResolver, simulator Simulator, logger *logrus.Logger) *PipelineService {
	return &PipelineService{
		store:       store,
		transcriber: transcriber,
		synthesizer: synthesizer,
		resolver:    resolver,
		simulator:   simulator,
		logger:      logger,
	}
}

// Process runs one request to a terminal outcome. Every outcome other than
// a validation failure attempts a spoken error narration when a callback
// phone is present; a failure of that attempt itself is logged and
// swallowed, never surfaced to the caller.
func (p *PipelineService) Process(ctx context.Context, req PipelineRequest) *models.Outcome {
	// ValidateParams
	if req.RecordingPath == "" || req.StartDate == "" || req.StartAmount <= 0 {
		return p.fail(ctx, req, models.OutcomeMissingParameters, "missing required parameters")
	}

	// DownloadRecording
	audio, err := p.store.Download(ctx, req.RecordingPath)
	if err != nil {
		p.logger.WithError(err).WithField("path", req.RecordingPath).Error("recording download failed")
		return p.fail(ctx, req, models.OutcomeDownloadFailed, fmt.Sprintf("failed to download recording: %v", err))
	}

	// Transcribe. The recording is staged to a private temp file for the
	// duration of recognition and removed on every exit path.
	recognized, cleanup, err := p.transcribeStaged(ctx, audio)
	defer cleanup()
	if err != nil {
		// Recognition errors are not a system fault; they collapse to the
		// same outcome as silence.
		p.logger.WithError(err).Warn("transcription failed")
		recognized = ""
	}
	if recognized == "" {
		return p.fail(ctx, req, models.OutcomeNoSpeechRecognized, "no clear speech was recognized")
	}
	p.logger.WithField("text", recognized).Info("speech recognized")

	// ResolveTicker
	symbol, displayName, ok := p.resolver.Resolve(recognized)
	if !ok {
		out := p.fail(ctx, req, models.OutcomeTickerNotFound,
			fmt.Sprintf("no security matched the recognized text %q", recognized))
		out.RecognizedText = recognized
		return out
	}

	// Simulate
	result, simErr := p.simulator.SimulateDCA(ctx, symbol, req.StartDate, req.StartAmount, req.MonthlyAmount, req.IntervalDays)
	if simErr != nil {
		p.logger.WithFields(logrus.Fields{
			"ticker": symbol,
			"kind":   simErr.Kind,
		}).WithError(simErr).Warn("simulation failed")
		out := p.fail(ctx, req, models.OutcomeSimulationFailed, simErr.Message)
		out.RecognizedText = recognized
		out.Ticker = symbol
		out.DisplayName = displayName
		return out
	}

	// Respond. Synthesis or upload failure never masks the computed result;
	// the audio reference is simply left empty.
	outcome := &models.Outcome{
		Kind:           models.OutcomeSuccess,
		RecognizedText: recognized,
		Ticker:         symbol,
		DisplayName:    displayName,
		Result:         result,
	}
	if req.CallbackPhone != "" {
		narration := BuildSuccessNarration(displayName, req.StartAmount, req.MonthlyAmount, result)
		if path, err := p.deliver(ctx, req.CallbackPhone, narration); err != nil {
			p.logger.WithError(err).Warn("failed to deliver spoken result")
		} else {
			outcome.AudioPath = path
		}
	}
	return outcome
}

// transcribeStaged writes the recording to a temp file private to this
// request and runs recognition from it. The returned cleanup always removes
// the file and is safe to call when staging failed.
func (p *PipelineService) transcribeStaged(ctx context.Context, audio []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "voicedca-*.wav")
	if err != nil {
		return "", func() {}, fmt.Errorf("stage recording: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			p.logger.WithError(err).Warn("failed to remove staged recording")
		}
	}
	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", cleanup, fmt.Errorf("stage recording: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", cleanup, fmt.Errorf("stage recording: %w", err)
	}

	text, err := p.transcriber.Transcribe(ctx, tmp.Name())
	return text, cleanup, err
}

// fail builds a failure outcome and attempts the spoken error message.
func (p *PipelineService) fail(ctx context.Context, req PipelineRequest, kind models.OutcomeKind, errMsg string) *models.Outcome {
	p.logger.WithField("outcome", kind).Info(errMsg)
	out := &models.Outcome{Kind: kind, ErrorMessage: errMsg}
	if req.CallbackPhone == "" {
		return out
	}
	path, err := p.deliver(ctx, req.CallbackPhone, BuildErrorNarration(errMsg))
	if err != nil {
		// A failed error narration must never escalate into a
		// second-order fault.
		p.logger.WithError(err).Warn("failed to deliver spoken error")
		return out
	}
	out.AudioPath = path
	return out
}

// deliver synthesizes the narration and uploads it to the caller's response
// folder, returning the remote path.
func (p *PipelineService) deliver(ctx context.Context, phone, narration string) (string, error) {
	audio, err := p.synthesizer.Synthesize(ctx, narration)
	if err != nil {
		return "", err
	}
	path := p.store.ResponsePath(phone)
	if err := p.store.Upload(ctx, path, audio); err != nil {
		return "", err
	}
	return path, nil
}
