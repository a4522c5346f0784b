package features

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// TokenizeFunc converts a text into its ordered token sequence.
type TokenizeFunc func(text string) ([]string, error)

// CountVectorizerConfig mirrors the hyperparameters the grid search sweeps.
// MaxFeatures == 0 means the vocabulary is uncapped.
type CountVectorizerConfig struct {
	NgramMin    int
	NgramMax    int
	MaxDF       float64
	MaxFeatures int
}

// DefaultCountVectorizerConfig keeps unigrams, no document-frequency cutoff
// and an uncapped vocabulary.
func DefaultCountVectorizerConfig() CountVectorizerConfig {
	return CountVectorizerConfig{NgramMin: 1, NgramMax: 1, MaxDF: 1.0}
}

// CountVectorizer builds token n-gram counts over a vocabulary fixed at Fit
// time. Vocabulary order is deterministic: terms sorted lexicographically.
type CountVectorizer struct {
	cfg      CountVectorizerConfig
	tokenize TokenizeFunc

	terms      []string
	vocabulary map[string]int
}

func NewCountVectorizer(tokenize TokenizeFunc, cfg CountVectorizerConfig) *CountVectorizer {
	return &CountVectorizer{cfg: cfg, tokenize: tokenize}
}

// NewCountVectorizerFromVocabulary rebuilds a fitted vectorizer from a
// previously exported vocabulary, preserving term order.
func NewCountVectorizerFromVocabulary(tokenize TokenizeFunc, cfg CountVectorizerConfig, terms []string) *CountVectorizer {
	v := NewCountVectorizer(tokenize, cfg)
	v.terms = append([]string(nil), terms...)
	v.vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
	}
	return v
}

// Vocabulary returns the fitted terms in column order.
func (v *CountVectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

func (v *CountVectorizer) NumFeatures() int { return len(v.terms) }

func (v *CountVectorizer) ngrams(tokens []string) []string {
	var grams []string
	for n := v.cfg.NgramMin; n <= v.cfg.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// Fit builds the vocabulary: count every n-gram, drop terms whose document
// frequency exceeds MaxDF, keep the MaxFeatures most frequent terms when a
// cap is set, then freeze the column order.
func (v *CountVectorizer) Fit(texts []string) error {
	if v.cfg.NgramMin < 1 || v.cfg.NgramMax < v.cfg.NgramMin {
		return fmt.Errorf("invalid n-gram span (%d, %d)", v.cfg.NgramMin, v.cfg.NgramMax)
	}
	if len(texts) == 0 {
		return fmt.Errorf("cannot fit vectorizer on zero documents")
	}

	totalCounts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, text := range texts {
		tokens, err := v.tokenize(text)
		if err != nil {
			return err
		}
		seen := make(map[string]bool)
		for _, gram := range v.ngrams(tokens) {
			totalCounts[gram]++
			if !seen[gram] {
				seen[gram] = true
				docFreq[gram]++
			}
		}
	}

	maxDocs := v.cfg.MaxDF * float64(len(texts))
	candidates := make([]string, 0, len(totalCounts))
	for term := range totalCounts {
		if float64(docFreq[term]) > maxDocs {
			continue
		}
		candidates = append(candidates, term)
	}

	if v.cfg.MaxFeatures > 0 && len(candidates) > v.cfg.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if totalCounts[candidates[i]] != totalCounts[candidates[j]] {
				return totalCounts[candidates[i]] > totalCounts[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.cfg.MaxFeatures]
	}
	sort.Strings(candidates)

	if len(candidates) == 0 {
		return fmt.Errorf("vocabulary is empty after applying max_df=%v", v.cfg.MaxDF)
	}

	v.terms = candidates
	v.vocabulary = make(map[string]int, len(candidates))
	for i, term := range candidates {
		v.vocabulary[term] = i
	}
	return nil
}

// Transform maps texts to their n-gram count matrix over the fitted
// vocabulary. Out-of-vocabulary terms are ignored.
func (v *CountVectorizer) Transform(texts []string) (*mat.Dense, error) {
	if v.vocabulary == nil {
		return nil, fmt.Errorf("vectorizer is not fitted")
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("cannot transform zero documents")
	}

	out := mat.NewDense(len(texts), len(v.terms), nil)
	for i, text := range texts {
		tokens, err := v.tokenize(text)
		if err != nil {
			return nil, err
		}
		for _, gram := range v.ngrams(tokens) {
			if j, ok := v.vocabulary[gram]; ok {
				out.Set(i, j, out.At(i, j)+1)
			}
		}
	}
	return out, nil
}
