// Package nlp wraps the text-processing primitives the feature stages are
// built on: URL-sanitised word tokenization, lemmatization, sentence
// segmentation and part-of-speech tagging. All model data ships inside the
// libraries, so constructing a Processor touches neither the network nor
// the filesystem.
package nlp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	prose "github.com/jdkato/prose/v2"
)

// SentinelToken replaces every detected URL before tokenization so the
// vectorizer sees "some URL" instead of memorizing arbitrary links.
const SentinelToken = "urlplaceholder"

const urlPattern = `http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`

// verbTags are the Penn-treebank tags that mark a verb in base or
// non-3rd-person-present form.
var verbTags = map[string]bool{"VB": true, "VBP": true}

// retweetMarker is matched against the first cleaned (lower-cased) token.
const retweetMarker = "rt"

// Processor holds the lemmatizer and the compiled URL pattern. Build it
// once and share it; every method is stateless with respect to its inputs.
type Processor struct {
	lemmatizer *golem.Lemmatizer
	urlRE      *regexp.Regexp
}

// NewProcessor loads the English lemmatizer dictionary and compiles the URL
// pattern. This is the single explicit setup step for all NLP state.
func NewProcessor() (*Processor, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer: %w", err)
	}
	return &Processor{
		lemmatizer: lemmatizer,
		urlRE:      regexp.MustCompile(urlPattern),
	}, nil
}

// Tokenize replaces URLs with the sentinel token, splits the text into word
// tokens, lemmatizes and lower-cases each one. Deterministic and idempotent:
// tokenizing the joined output again yields the same sequence.
func (p *Processor) Tokenize(text string) ([]string, error) {
	text = p.urlRE.ReplaceAllString(text, SentinelToken)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize: %w", err)
	}

	tokens := doc.Tokens()
	cleaned := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lemma := p.lemmatizer.Lemma(tok.Text)
		cleaned = append(cleaned, strings.TrimSpace(strings.ToLower(lemma)))
	}
	return cleaned, nil
}

// Sentences splits text into sentences.
func (p *Processor) Sentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTokenization(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to segment sentences: %w", err)
	}

	sentences := doc.Sentences()
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, s.Text)
	}
	return out, nil
}

// StartingVerb reports whether the first sentence of text opens with a verb
// in base or non-3rd-person-present form, or with the retweet marker. Empty
// text, texts with no sentences and sentences with no tokens all answer
// false rather than failing.
func (p *Processor) StartingVerb(text string) (bool, error) {
	sentences, err := p.Sentences(text)
	if err != nil {
		return false, err
	}
	if len(sentences) == 0 {
		return false, nil
	}

	tokens, err := p.Tokenize(sentences[0])
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return false, nil
	}
	if tokens[0] == retweetMarker {
		return true, nil
	}

	// Tag the cleaned tokens, not the raw sentence, so the tagger sees the
	// same sequence the vectorizer does.
	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return false, fmt.Errorf("failed to tag tokens: %w", err)
	}

	tagged := doc.Tokens()
	if len(tagged) == 0 {
		return false, nil
	}
	return verbTags[tagged[0].Tag], nil
}
