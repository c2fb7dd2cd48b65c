// Package relate holds the HTTP clients for the RELATE platform: the
// TEPROLIN text annotation service and the Romanian WordNet web service.
package relate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/discourse/pkg/discourse/model"
)

// Annotator calls a TEPROLIN-compatible processing endpoint, e.g.
// http://relate.racai.ro:5000/process.
type Annotator struct {
	BaseURL string

	HTTPClient *http.Client
}

type teprolinResponse struct {
	Result struct {
		Tokenized [][]teprolinToken `json:"tokenized"`
	} `json:"teprolin-result"`
}

type teprolinToken struct {
	WordForm string `json:"_wordform"`
	Lemma    string `json:"_lemma"`
	MSD      string `json:"_msd"`
	Head     string `json:"_head"`
	DepRel   string `json:"_deprel"`
}

// Annotate sends the text for processing and maps the first tokenized
// sentence to the engine's token model.
func (a *Annotator) Annotate(ctx context.Context, text string) ([]model.Token, error) {
	if a.BaseURL == "" {
		return nil, fmt.Errorf("teprolin: base URL required")
	}

	form := url.Values{"text": {text}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	resp, err := httpClient(a.HTTPClient).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teprolin: status %s for text %q", resp.Status, text)
	}

	var payload teprolinResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("teprolin: decode response: %w", err)
	}
	if len(payload.Result.Tokenized) == 0 {
		return nil, fmt.Errorf("teprolin: no tokenization for text %q", text)
	}

	sentence := payload.Result.Tokenized[0]
	tokens := make([]model.Token, 0, len(sentence))
	for _, tk := range sentence {
		head, err := strconv.Atoi(tk.Head)
		if err != nil {
			return nil, fmt.Errorf("teprolin: bad head %q: %w", tk.Head, err)
		}
		tokens = append(tokens, model.Token{
			Form:   tk.WordForm,
			Lemma:  tk.Lemma,
			POS:    tk.MSD,
			DepRel: tk.DepRel,
			Head:   head,
		})
	}
	return tokens, nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 15 * time.Second}
}
