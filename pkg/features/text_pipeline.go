package features

import "gonum.org/v1/gonum/mat"

// TextPipeline chains the count vectorizer and the tf-idf stage into one
// Transformer over raw texts.
type TextPipeline struct {
	Vectorizer *CountVectorizer
	Tfidf      *TfidfTransformer
}

func NewTextPipeline(tokenize TokenizeFunc, cfg CountVectorizerConfig, useIDF bool) *TextPipeline {
	return &TextPipeline{
		Vectorizer: NewCountVectorizer(tokenize, cfg),
		Tfidf:      NewTfidfTransformer(useIDF),
	}
}

func (tp *TextPipeline) NumFeatures() int { return tp.Vectorizer.NumFeatures() }

func (tp *TextPipeline) Fit(texts []string) error {
	if err := tp.Vectorizer.Fit(texts); err != nil {
		return err
	}
	counts, err := tp.Vectorizer.Transform(texts)
	if err != nil {
		return err
	}
	return tp.Tfidf.Fit(counts)
}

func (tp *TextPipeline) Transform(texts []string) (*mat.Dense, error) {
	counts, err := tp.Vectorizer.Transform(texts)
	if err != nil {
		return nil, err
	}
	return tp.Tfidf.Transform(counts)
}
