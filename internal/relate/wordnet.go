package relate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// WordNet calls the Romanian WordNet web service of the RELATE platform,
// e.g. https://relate.racai.ro/index.php?path=rownws. All senses of a word
// contribute to one merged relation list.
type WordNet struct {
	BaseURL string

	HTTPClient *http.Client
}

type wordnetResponse struct {
	Senses []struct {
		Literal   string `json:"literal"`
		Relations []struct {
			Rel      string `json:"rel"`
			TLiteral string `json:"tliteral"`
		} `json:"relations"`
	} `json:"senses"`
}

// Synonyms returns the synset members of every sense of word, the word
// itself excluded.
func (w *WordNet) Synonyms(ctx context.Context, word string) ([]string, error) {
	payload, err := w.query(ctx, word)
	if err != nil {
		return nil, err
	}
	var synonyms []string
	for _, sense := range payload.Senses {
		for _, syn := range strings.Split(sense.Literal, ",") {
			if syn != "" && syn != word {
				synonyms = append(synonyms, syn)
			}
		}
	}
	return synonyms, nil
}

// Hypernyms returns the direct hypernyms of every sense of word.
func (w *WordNet) Hypernyms(ctx context.Context, word string) ([]string, error) {
	return w.relationMembers(ctx, word, "hypernym")
}

// Hyponyms returns the direct hyponyms of every sense of word.
func (w *WordNet) Hyponyms(ctx context.Context, word string) ([]string, error) {
	return w.relationMembers(ctx, word, "hyponym")
}

func (w *WordNet) relationMembers(ctx context.Context, word, rel string) ([]string, error) {
	payload, err := w.query(ctx, word)
	if err != nil {
		return nil, err
	}
	var members []string
	for _, sense := range payload.Senses {
		for _, relation := range sense.Relations {
			if relation.Rel == rel {
				members = append(members, relation.TLiteral)
			}
		}
	}
	return members, nil
}

func (w *WordNet) query(ctx context.Context, word string) (*wordnetResponse, error) {
	if w.BaseURL == "" {
		return nil, fmt.Errorf("wordnet: base URL required")
	}

	u, err := url.Parse(w.BaseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("word", word)
	q.Set("sid", "")
	q.Set("wn", "ro")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient(w.HTTPClient).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wordnet: status %s for word %q", resp.Status, word)
	}

	var payload wordnetResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("wordnet: decode response: %w", err)
	}
	return &payload, nil
}
