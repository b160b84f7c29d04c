package config

const (
	defaultDataDir   = "~/.local/share/subtext"
	defaultLogDir    = "~/.local/share/subtext/logs"
	defaultOutputDir = "."

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultSampleFPS           = 3.0
	defaultROIMode             = "auto"
	defaultOCREngine           = "paddleocr"
	defaultOCRCommand          = "paddleocr-server"
	defaultFFmpegBinary        = "ffmpeg"
	defaultConfidenceThreshold = 0.7
	defaultSimilarityThreshold = 0.90
	defaultMinDurationMS       = 1200

	defaultMaxLineChars   = 42
	defaultMaxLines       = 2
	defaultSourceLanguage = "ja"

	defaultMinDisplaySec         = 1.2
	defaultMaxDisplaySec         = 10.0
	defaultMaxReadingCharsPerSec = 20.0

	defaultTranslateProvider       = "http"
	defaultTranslateTimeoutSeconds = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			OutputDir: defaultOutputDir,
		},
		Extraction: Extraction{
			SampleFPS:           defaultSampleFPS,
			ROIMode:             defaultROIMode,
			OCREngine:           defaultOCREngine,
			OCRCommand:          defaultOCRCommand,
			FFmpegBinary:        defaultFFmpegBinary,
			ConfidenceThreshold: defaultConfidenceThreshold,
			SimilarityThreshold: defaultSimilarityThreshold,
			MinDurationMS:       defaultMinDurationMS,
		},
		Format: Format{
			MaxLineChars:   defaultMaxLineChars,
			MaxLines:       defaultMaxLines,
			SourceLanguage: defaultSourceLanguage,
			RTLLanguages:   []string{"ar", "he", "fa", "ur"},
		},
		QC: QC{
			MinDisplaySec:         defaultMinDisplaySec,
			MaxDisplaySec:         defaultMaxDisplaySec,
			MaxReadingCharsPerSec: defaultMaxReadingCharsPerSec,
		},
		Translate: Translate{
			Provider:       defaultTranslateProvider,
			TimeoutSeconds: defaultTranslateTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
