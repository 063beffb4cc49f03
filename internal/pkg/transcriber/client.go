package transcriber

import (
	"context"
	"fmt"
	"strings"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/airenas/minutes/internal/pkg/filer"
	"github.com/airenas/minutes/internal/pkg/parser"
	"github.com/airenas/minutes/internal/pkg/transcriber/api"
	"github.com/airenas/minutes/internal/pkg/utils"
)

const (
	// DefaultModel is used if no model configured
	DefaultModel = "gemini-2.5-flash"
	// DefaultLocation is a vertex location used if nothing configured
	DefaultLocation = "us-central1"

	fallbackAudioType = "audio/wav"
)

// ErrParse is returned inside result when the response has no delimited sections
var ErrParse = errors.New("Parsing failed")

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options keeps generative model settings
type Options struct {
	// Backend is vertex or gemini
	Backend  string
	Project  string
	Location string
	APIKey   string
	Model    string
}

// Client asks the generative model for a transcript and minutes of the stored audio
type Client struct {
	gen   generator
	model string
}

// NewClient creates genai based client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	cfg := &genai.ClientConfig{}
	switch opts.Backend {
	case "", "vertex":
		if opts.Project == "" {
			return nil, errors.New("no project")
		}
		cfg.Backend = genai.BackendVertexAI
		cfg.Project = opts.Project
		cfg.Location = defaultS(opts.Location, DefaultLocation)
	case "gemini":
		if opts.APIKey == "" {
			return nil, errors.New("no api key")
		}
		cfg.Backend = genai.BackendGeminiAPI
		cfg.APIKey = opts.APIKey
	default:
		return nil, errors.Errorf("unknown backend '%s'", opts.Backend)
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("can't init genai client: %w", err)
	}
	res := &Client{gen: c.Models, model: defaultS(opts.Model, DefaultModel)}
	goapp.Log.Info().Str("backend", defaultS(opts.Backend, "vertex")).Str("model", res.model).Msg("init genai")
	return res, nil
}

// Analyze returns transcript and minutes of the audio at gsURI.
// It never fails, a failure is returned as a result with Error set.
func (c *Client) Analyze(ctx context.Context, gsURI, mimeType string) *api.Result {
	defer goapp.Estimate("genai call")()
	if mimeType == "" {
		mimeType = defaultS(filer.TypeByName(gsURI), fallbackAudioType)
	}
	goapp.Log.Info().Str("uri", gsURI).Str("mime", mimeType).Str("model", c.model).Msg("transcribe and analyze")

	resp, err := c.gen.GenerateContent(ctx, c.model, newContents(gsURI, mimeType), nil)
	if err != nil {
		goapp.Log.Error().Err(err).Str("uri", gsURI).Msg("genai call failed")
		return api.NewFailure(utils.NewError(utils.KindGeneration, err), "")
	}
	if resp == nil {
		return api.NewFailure(utils.NewError(utils.KindGeneration, errors.New("no response")), "")
	}
	raw := strings.TrimSpace(resp.Text())
	goapp.Log.Info().Int("len", len(raw)).Msg("got response")

	sections := parser.ParseSections(raw)
	if !sections.Complete() {
		goapp.Log.Warn().Int("len", len(raw)).Msg("can't parse response sections")
		return api.NewFailure(utils.NewError(utils.KindParse, ErrParse), raw)
	}
	return api.NewSuccess(sections.Transcript, sections.MOM)
}

func newContents(gsURI, mimeType string) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{FileData: &genai.FileData{FileURI: gsURI, MIMEType: mimeType}},
			{Text: Prompt},
		},
	}}
}

func defaultS(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
