package excerpt

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/failure"
)

/*
Responsibilities
- Turn a post's content HTML into a short plain-text summary

Rules
- Media, code and tables never contribute text
- Headings are skipped; body paragraphs are taken in document order
- Markdown syntax produced by the conversion is stripped
- The result is cut at a word boundary and marked with an ellipsis

Conversion goes through Markdown so that block boundaries are normalized
before text is joined.
*/

const DefaultMaxRunes = 160

var (
	mdLink       = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	mdHeading    = regexp.MustCompile(`^#{1,6}\s`)
	mdListMarker = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	mdQuote      = regexp.MustCompile(`(?m)^>\s?`)
	mdEmphasis   = regexp.MustCompile("[*_`~]+")
	whitespace   = regexp.MustCompile(`\s+`)
)

type Extractor struct {
	metadataSink metadata.MetadataSink
	conv         *converter.Converter
	maxRunes     int
}

func NewExtractor(metadataSink metadata.MetadataSink, maxRunes int) *Extractor {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &Extractor{
		metadataSink: metadataSink,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		maxRunes: maxRunes,
	}
}

// Summarize returns a plain-text excerpt of contentHTML, or "" when the
// content has no body text.
func (e *Extractor) Summarize(contentHTML string) (string, failure.ClassifiedError) {
	summary, err := e.summarize(contentHTML)
	if err != nil {
		e.metadataSink.RecordError(
			time.Now(),
			"excerpt",
			"Extractor.Summarize",
			mapExcerptErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{},
		)
		return "", err
	}
	return summary, nil
}

func (e *Extractor) summarize(contentHTML string) (string, *ExcerptError) {
	if strings.TrimSpace(contentHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", &ExcerptError{
			Message: err.Error(),
			Cause:   ErrCauseParseFailure,
		}
	}
	doc.Find("script, style, figure, img, picture, video, iframe, pre, table").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return "", nil
	}

	markdown, convErr := e.conv.ConvertNode(body.Get(0))
	if convErr != nil {
		return "", &ExcerptError{
			Message: convErr.Error(),
			Cause:   ErrCauseConversionFailure,
		}
	}

	return truncate(plainText(string(markdown), e.maxRunes), e.maxRunes), nil
}

// plainText joins body blocks until there is enough text to fill limit.
func plainText(markdown string, limit int) string {
	var parts []string
	length := 0
	for _, block := range strings.Split(markdown, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" || mdHeading.MatchString(block) {
			continue
		}
		text := mdLink.ReplaceAllString(block, "$1")
		text = mdListMarker.ReplaceAllString(text, "")
		text = mdQuote.ReplaceAllString(text, "")
		text = mdEmphasis.ReplaceAllString(text, "")
		text = strings.ReplaceAll(text, `\`, "")
		text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
		if text == "" {
			continue
		}
		parts = append(parts, text)
		length += utf8.RuneCountInString(text) + 1
		if length > limit {
			break
		}
	}
	return strings.Join(parts, " ")
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit-1])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
