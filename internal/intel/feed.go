package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/pkg/models"
)

const (
	// DefaultTTL is how long a digest snapshot is considered fresh.
	DefaultTTL = 15 * time.Minute

	// DefaultModel is the search-capable model used for refreshes.
	DefaultModel = "perplexity/sonar-pro"

	refreshMaxTokens   = 1500
	refreshTemperature = 0.3
)

// topics are the monitored subject areas per digest language.
var topics = map[models.Language][]string{
	models.LangEnglish: {"Arctic development", "Biotech regulations", "EU AI governance", "Global strategic shifts"},
	models.LangRussian: {"Арктика геополитика", "Биотехнологии РФ", "Технологическая политика", "Экономическая стратегия"},
}

// jsonArrayPattern pulls the first JSON array out of a model response
// that may wrap it in prose or code fences.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Digest is the response served to callers.
type Digest struct {
	Items      []Item    `json:"items"`
	LastUpdate time.Time `json:"lastUpdate"`
	Cached     bool      `json:"cached"`
}

// Feed serves the digest, refreshing it through the gateway when the
// stored snapshot is stale or empty.
type Feed struct {
	gateway llm.Gateway
	store   Store
	log     *zap.Logger
	model   string
	ttl     time.Duration
}

// NewFeed creates a Feed. Empty model and zero ttl fall back to the
// defaults.
func NewFeed(gateway llm.Gateway, store Store, log *zap.Logger, model string, ttl time.Duration) *Feed {
	if model == "" {
		model = DefaultModel
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{gateway: gateway, store: store, log: log, model: model, ttl: ttl}
}

// digestLanguage folds the requested language onto a maintained digest
// language. Only English and Russian digests exist.
func digestLanguage(lang models.Language) models.Language {
	if lang == models.LangRussian {
		return models.LangRussian
	}
	return models.LangEnglish
}

// Get returns the digest for lang. A fresh, non-empty snapshot is
// served as cached; otherwise one refresh call is made, and on any
// refresh failure the previous snapshot is served rather than an
// empty result.
func (f *Feed) Get(ctx context.Context, lang models.Language) (Digest, error) {
	lang = digestLanguage(lang)

	prev, err := f.store.Get(ctx, lang)
	if err != nil && err != ErrNotFound {
		return Digest{}, err
	}

	if len(prev.Items) > 0 && time.Since(prev.LastUpdate) < f.ttl {
		return Digest{Items: prev.Items, LastUpdate: prev.LastUpdate, Cached: true}, nil
	}

	items := f.refresh(ctx, lang)
	if len(items) > 0 {
		snap := Snapshot{Items: items, LastUpdate: time.Now().UTC()}
		if err := f.store.Put(ctx, lang, snap); err != nil {
			f.log.Warn("digest store write failed", zap.Error(err))
		}
		return Digest{Items: items, LastUpdate: snap.LastUpdate, Cached: false}, nil
	}

	// Refresh failed: degrade to the stale snapshot if one exists.
	return Digest{Items: prev.Items, LastUpdate: time.Now().UTC(), Cached: false}, nil
}

// refresh fetches a fresh item list through the gateway. Any failure
// returns nil; the caller decides how to degrade.
func (f *Feed) refresh(ctx context.Context, lang models.Language) []Item {
	resp, err := f.gateway.Complete(ctx, llm.CompletionRequest{
		Model:       f.model,
		User:        refreshPrompt(lang),
		MaxTokens:   refreshMaxTokens,
		Temperature: refreshTemperature,
	})
	if err != nil {
		f.log.Warn("digest refresh failed", zap.String("lang", string(lang)), zap.Error(err))
		return nil
	}

	items, err := parseItems(resp.Content)
	if err != nil {
		f.log.Warn("digest parse failed", zap.String("lang", string(lang)), zap.Error(err))
		return nil
	}
	return items
}

// refreshPrompt builds the structured-list request for one language.
func refreshPrompt(lang models.Language) string {
	list := strings.Join(topics[lang], ", ")
	if lang == models.LangRussian {
		return fmt.Sprintf(`Найди 5 важных новостей за 48 часов по темам: %s. Формат JSON: [{"title":"...","summary":"...","category":"ARCTIC|BIOTECH|TECH|STRATEGY","importance":"HIGH|MEDIUM|LOW","time":"X hours ago"}]`, list)
	}
	return fmt.Sprintf(`Find 5 important news from last 48 hours on: %s. Format JSON: [{"title":"...","summary":"...","category":"ARCTIC|BIOTECH|TECH|STRATEGY","importance":"HIGH|MEDIUM|LOW","time":"X hours ago"}]`, list)
}

// parseItems extracts the item array from a model response.
func parseItems(content string) ([]Item, error) {
	match := jsonArrayPattern.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var items []Item
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}
