package tagger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"keyterm/internal/types"
)

// corenlpProps asks the server for tokenization and POS tags only.
const corenlpProps = `{"annotators":"tokenize,ssplit,pos","outputFormat":"json"}`

const defaultTimeout = 15 * time.Second

// RemoteTagger tags English sentences against a Stanford CoreNLP
// compatible HTTP server. Zero value is not usable; construct with
// NewRemoteTagger.
type RemoteTagger struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewRemoteTagger(baseURL string) *RemoteTagger {
	return &RemoteTagger{BaseURL: strings.TrimRight(baseURL, "/")}
}

type corenlpToken struct {
	Word string `json:"word"`
	Pos  string `json:"pos"`
}

type corenlpResponse struct {
	Sentences []struct {
		Tokens []corenlpToken `json:"tokens"`
	} `json:"sentences"`
}

func (r *RemoteTagger) Tag(sentence string) ([]types.Token, error) {
	endpoint := r.BaseURL + "/?properties=" + url.QueryEscape(corenlpProps)
	resp, err := r.httpClient().Post(endpoint, "text/plain; charset=utf-8", strings.NewReader(sentence))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrTaggerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server replied %s", types.ErrTaggerUnavailable, resp.Status)
	}

	var payload corenlpResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrMalformedOutput, err)
	}

	out := []types.Token{}
	for _, s := range payload.Sentences {
		for _, tk := range s.Tokens {
			if tk.Word == "" {
				return nil, fmt.Errorf("%w: empty token surface", types.ErrMalformedOutput)
			}
			out = append(out, types.Token{Text: tk.Word, POS: tk.Pos})
		}
	}
	return out, nil
}

func (r *RemoteTagger) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}
