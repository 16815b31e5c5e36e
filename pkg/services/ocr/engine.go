package ocr

import "fmt"

const (
	EngineAzure     = "azure"
	EngineTesseract = "tesseract"
)

// Options selects and configures an OCR engine
type Options struct {
	Engine        string
	AzureEndpoint string
	AzureKey      string
	TesseractLang string
}

// NewEngine builds the engine named in opts
func NewEngine(opts Options) (Engine, error) {
	switch opts.Engine {
	case EngineAzure:
		if opts.AzureEndpoint == "" || opts.AzureKey == "" {
			return nil, fmt.Errorf("azure ocr needs an endpoint and key")
		}
		return NewAzureService(opts.AzureEndpoint, opts.AzureKey), nil
	case EngineTesseract, "":
		return NewTesseractService(opts.TesseractLang), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", opts.Engine)
	}
}
