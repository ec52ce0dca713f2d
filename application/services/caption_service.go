package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/orsinium-labs/stopwords"
	"go.uber.org/zap"

	"meumuseu/pkg/observability"
)

// captionPrefixes are the decorative openings a generated caption starts
// with. The pool is fixed; only the keyword tail varies per description.
var captionPrefixes = []string{
	"Memórias que Ecoam: ",
	"Instantes Capturados: ",
	"Fragmentos do Tempo: ",
	"Cores da Lembrança: ",
	"Ecos do Passado: ",
	"Página da Vida: ",
	"Impressões Eternas: ",
	"Momentos Guardados: ",
}

// fallbackCaption is returned only when caption assembly fails outright
const fallbackCaption = "Memória Especial"

// extraStoplist supplements the Portuguese stopword corpus with connective
// words long enough to pass the length filter but useless as keywords.
var extraStoplist = map[string]struct{}{
	"sobre":  {},
	"entre":  {},
	"quando": {},
	"ainda":  {},
	"depois": {},
	"antes":  {},
}

// minKeywordLength filters out short words; a keyword must be longer
const minKeywordLength = 4

// CaptionService fabricates a decorative title from a memory description.
// It stands in for a real AI captioning backend: keyword extraction plus a
// random template, behind the same simulated latency as the other stores.
type CaptionService struct {
	stops   *stopwords.Stopwords
	gate    *LatencyGate
	metrics *observability.Collector
	logger  *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCaptionService creates a new caption service
func NewCaptionService(gate *LatencyGate, metrics *observability.Collector, logger *zap.Logger) *CaptionService {
	return &CaptionService{
		stops:   stopwords.MustGet("pt"),
		gate:    gate,
		metrics: metrics,
		logger:  logger,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// GenerateWithContext waits out the simulated backend latency, then
// delegates to Generate
func (s *CaptionService) GenerateWithContext(ctx context.Context, description string) (string, error) {
	if err := s.gate.Wait(ctx); err != nil {
		return "", err
	}
	return s.Generate(description), nil
}

// Generate assembles a caption from a random prefix and up to two keywords
// picked from the description. It never fails: a description with no usable
// keywords still gets a bare prefix, and the fallback caption covers only
// internal assembly failure.
func (s *CaptionService) Generate(description string) (caption string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Caption assembly failed", zap.Any("cause", r))
			caption = fallbackCaption
		}
	}()

	prefix, selected := s.pick(s.extractKeywords(description))

	if s.metrics != nil {
		s.metrics.CaptionsGenerated.Inc()
	}
	return prefix + strings.Join(selected, " ")
}

// pick draws a prefix and up to two keywords without replacement
func (s *CaptionService) pick(keywords []string) (string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := captionPrefixes[s.rng.Intn(len(captionPrefixes))]

	count := len(keywords)
	if count > 2 {
		count = 2
	}
	selected := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := s.rng.Intn(len(keywords))
		selected = append(selected, keywords[idx])
		keywords = append(keywords[:idx], keywords[idx+1:]...)
	}
	return prefix, selected
}

// extractKeywords keeps words long enough to carry meaning and not on any
// stoplist. Order follows the description.
func (s *CaptionService) extractKeywords(description string) []string {
	var keywords []string
	for _, word := range strings.Fields(description) {
		if utf8.RuneCountInString(word) <= minKeywordLength {
			continue
		}
		lower := strings.ToLower(word)
		if _, skip := extraStoplist[lower]; skip {
			continue
		}
		if s.stops != nil && s.stops.Contains(lower) {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
