package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"vocal-coach-go/internal/audio"
	"vocal-coach-go/internal/emotion"
	"vocal-coach-go/internal/feedback"
	"vocal-coach-go/internal/features"
	"vocal-coach-go/internal/logger"
	"vocal-coach-go/internal/scoring"
	"vocal-coach-go/internal/transcription"
	"vocal-coach-go/internal/types"
)

// Analyzer runs the full analysis for one recording. Collaborators are
// injected at construction and reused read-only, so one Analyzer serves
// concurrent analyses of independent recordings without coordination.
type Analyzer struct {
	extractor   *features.Extractor
	engine      *feedback.Engine
	transcriber transcription.Transcriber
	classifier  emotion.Classifier
	log         *logrus.Entry
}

// New builds an Analyzer. Either collaborator may be nil: transcription then
// yields an empty transcript and emotion classification falls back to
// neutral.
func New(transcriber transcription.Transcriber, classifier emotion.Classifier, log *logger.Logger) *Analyzer {
	return &Analyzer{
		extractor:   features.NewExtractor(),
		engine:      feedback.NewEngine(),
		transcriber: transcriber,
		classifier:  classifier,
		log:         log.Component("pipeline"),
	}
}

// Options selects the optional parts of an analysis.
type Options struct {
	// TargetText enables content-accuracy scoring.
	TargetText string
	// Benchmark switches the report to the comparative path.
	Benchmark *feedback.Subject
}

// AnalysisResult is the complete outcome for one recording. Exactly one of
// Report/Comparative is set.
type AnalysisResult struct {
	Descriptors types.DescriptorSet      `json:"descriptors"`
	Transcript  string                   `json:"transcript,omitempty"`
	Emotions    types.EmotionProfile     `json:"emotions"`
	Score       float64                  `json:"expressivenessScore"`
	Report      *types.FeedbackReport    `json:"report,omitempty"`
	Comparative *types.ComparativeReport `json:"comparativeReport,omitempty"`
	DurationMs  int64                    `json:"duration_ms"`
}

// Analyze decodes and analyzes one recording. A decode failure aborts the
// whole analysis; collaborator failures degrade to defaults and the analysis
// continues.
func (a *Analyzer) Analyze(ctx context.Context, src audio.Source, opts Options) (AnalysisResult, error) {
	start := time.Now()

	samples, sampleRate, err := audio.Decode(src)
	if err != nil {
		return AnalysisResult{}, err
	}

	descriptors := a.extractor.Extract(samples, sampleRate)
	transcript := a.transcribe(ctx, src)
	emotions := a.classify(ctx, transcript)
	score := scoring.Expressiveness(descriptors, emotions.Confidence())

	result := AnalysisResult{
		Descriptors: descriptors,
		Transcript:  transcript,
		Emotions:    emotions,
		Score:       score,
	}

	if opts.Benchmark != nil {
		user := feedback.Subject{
			Descriptors: descriptors,
			Emotions:    emotions,
			Score:       score,
			Transcript:  transcript,
		}
		report := a.engine.GenerateComparative(user, *opts.Benchmark, opts.TargetText)
		result.Comparative = &report
	} else {
		report := a.engine.Generate(descriptors, emotions, score, transcript, opts.TargetText)
		result.Report = &report
	}

	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// transcribe returns "" when no transcriber is wired or the call fails; an
// empty transcript means "no transcript available" downstream.
func (a *Analyzer) transcribe(ctx context.Context, src audio.Source) string {
	if a.transcriber == nil {
		return ""
	}
	data, err := src.Bytes()
	if err != nil {
		a.log.WithError(err).Warn("could not read audio for transcription")
		return ""
	}
	text, err := a.transcriber.Transcribe(ctx, data)
	if err != nil {
		a.log.WithError(err).Warn("transcription unavailable, continuing without transcript")
		return ""
	}
	return text
}

func (a *Analyzer) classify(ctx context.Context, transcript string) types.EmotionProfile {
	if a.classifier == nil || transcript == "" {
		return types.NeutralEmotion()
	}
	profile, err := a.classifier.Classify(ctx, transcript)
	if err != nil {
		a.log.WithError(err).Warn("emotion classification unavailable, falling back to neutral")
		return types.NeutralEmotion()
	}
	if len(profile.Scores) == 0 {
		return types.NeutralEmotion()
	}
	return profile
}
