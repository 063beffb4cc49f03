package transcriber

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/airenas/minutes/internal/pkg/test"
	"github.com/airenas/minutes/internal/pkg/utils"
)

type genMock struct{ mock.Mock }

func (m *genMock) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, model, contents, config)
	var res *genai.GenerateContentResponse
	if v := args.Get(0); v != nil {
		res = v.(*genai.GenerateContentResponse)
	}
	return res, args.Error(1)
}

func textResp(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: s}}}},
	}}
}

func initTest(t *testing.T, resp *genai.GenerateContentResponse, err error) (*Client, *genMock) {
	t.Helper()
	gm := &genMock{}
	gm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(resp, err)
	return &Client{gen: gm, model: DefaultModel}, gm
}

func TestAnalyze(t *testing.T) {
	c, gm := initTest(t, textResp("\n---TRANSCRIPT---\nA: Hello\n\n---MOM---\n# Minutes\n- hello\n"), nil)

	r := c.Analyze(test.Ctx(t), "gs://b/k.wav", "audio/wav")

	require.NotNil(t, r)
	assert.False(t, r.Failed())
	assert.Equal(t, "A: Hello", r.Transcript)
	assert.Equal(t, "# Minutes\n- hello", r.MOM)
	assert.Nil(t, r.Err)
	require.Equal(t, 1, len(gm.Calls))
	assert.Equal(t, DefaultModel, gm.Calls[0].Arguments[1])
}

func TestAnalyze_Request(t *testing.T) {
	c, gm := initTest(t, textResp("---TRANSCRIPT---\na\n---MOM---\nb"), nil)

	c.Analyze(test.Ctx(t), "gs://b/k.flac", "audio/flac")

	require.Equal(t, 1, len(gm.Calls))
	contents := gm.Calls[0].Arguments[2].([]*genai.Content)
	require.Equal(t, 1, len(contents))
	assert.Equal(t, "user", contents[0].Role)
	require.Equal(t, 2, len(contents[0].Parts))
	require.NotNil(t, contents[0].Parts[0].FileData)
	assert.Equal(t, "gs://b/k.flac", contents[0].Parts[0].FileData.FileURI)
	assert.Equal(t, "audio/flac", contents[0].Parts[0].FileData.MIMEType)
	assert.Equal(t, Prompt, contents[0].Parts[1].Text)
	assert.Contains(t, contents[0].Parts[1].Text, "---TRANSCRIPT---")
	assert.Contains(t, contents[0].Parts[1].Text, "---MOM---")
}

func TestAnalyze_MIMEFallback(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uri: "gs://b/k.mp3", want: "audio/mpeg"},
		{uri: "gs://b/k", want: "audio/wav"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			c, gm := initTest(t, textResp("---TRANSCRIPT---\na\n---MOM---\nb"), nil)
			c.Analyze(test.Ctx(t), tt.uri, "")
			contents := gm.Calls[0].Arguments[2].([]*genai.Content)
			assert.Equal(t, tt.want, contents[0].Parts[0].FileData.MIMEType)
		})
	}
}

func TestAnalyze_ParseFail(t *testing.T) {
	c, _ := initTest(t, textResp("  I could not hear anything  "), nil)

	r := c.Analyze(test.Ctx(t), "gs://b/k.wav", "audio/wav")

	assert.True(t, r.Failed())
	assert.Equal(t, "Parsing failed", r.Error)
	assert.Equal(t, "I could not hear anything", r.RawOutput)
	assert.Equal(t, utils.KindParse, utils.KindOf(r.Err))
	assert.True(t, errors.Is(r.Err, ErrParse))
}

func TestAnalyze_EmptySection(t *testing.T) {
	c, _ := initTest(t, textResp("---TRANSCRIPT---\nHello\n---MOM---\n"), nil)

	r := c.Analyze(test.Ctx(t), "gs://b/k.wav", "audio/wav")

	assert.True(t, r.Failed())
	assert.Equal(t, "Parsing failed", r.Error)
	assert.Equal(t, "---TRANSCRIPT---\nHello\n---MOM---", r.RawOutput)
}

func TestAnalyze_CallFail(t *testing.T) {
	c, _ := initTest(t, nil, errors.New("quota exceeded"))

	r := c.Analyze(test.Ctx(t), "gs://b/k.wav", "audio/wav")

	assert.True(t, r.Failed())
	assert.Equal(t, "quota exceeded", r.Error)
	assert.Equal(t, "", r.RawOutput)
	assert.Equal(t, utils.KindGeneration, utils.KindOf(r.Err))
}

func TestAnalyze_NoCandidates(t *testing.T) {
	c, _ := initTest(t, &genai.GenerateContentResponse{}, nil)

	r := c.Analyze(test.Ctx(t), "gs://b/k.wav", "audio/wav")

	assert.True(t, r.Failed())
	assert.Equal(t, utils.KindParse, utils.KindOf(r.Err))
}

func TestNewClient_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "no project", opts: Options{Backend: "vertex"}},
		{name: "no project default", opts: Options{}},
		{name: "no key", opts: Options{Backend: "gemini"}},
		{name: "unknown", opts: Options{Backend: "olia", Project: "p", APIKey: "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(test.Ctx(t), tt.opts)
			assert.NotNil(t, err)
			assert.Nil(t, c)
		})
	}
}
