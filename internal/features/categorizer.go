package features

import (
	"strings"

	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// Rule pairs a category with the keywords that select it. Rules are
// evaluated in order and the first keyword hit wins, so list order is the
// tie-break: an app name matching both a productive keyword and a social
// keyword is productive.
type Rule struct {
	Category models.Category
	Keywords []string
}

// DefaultRules returns the curated keyword lists in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: models.CategoryProductive,
			Keywords: []string{
				"vs code", "pycharm", "intellij", "eclipse", "sublime",
				"chrome", "firefox", "edge", "safari",
				"slack", "teams", "zoom", "outlook", "gmail",
				"jupyter", "rstudio", "terminal", "cmd",
				"excel", "word", "powerpoint", "google docs", "sheets",
			},
		},
		{
			Category: models.CategorySocial,
			Keywords: []string{
				"facebook", "instagram", "twitter", "whatsapp",
				"telegram", "messenger", "snapchat", "tiktok",
			},
		},
		{
			Category: models.CategoryEntertainment,
			Keywords: []string{
				"youtube", "netflix", "spotify", "prime video",
				"disney+", "hulu", "twitch", "games",
			},
		},
		{
			Category: models.CategoryBrowser,
			Keywords: []string{"browser", "chrome", "firefox"},
		},
		{
			Category: models.CategoryDevelopment,
			Keywords: []string{"code", "pycharm", "ide"},
		},
		{
			Category: models.CategoryCommunication,
			Keywords: []string{"slack", "teams", "zoom"},
		},
	}
}

// RulesFromConfig converts configured rules, falling back to the built-in
// lists when the config carries none.
func RulesFromConfig(cfg config.CategorizerConfig) []Rule {
	if len(cfg.Rules) == 0 {
		return DefaultRules()
	}

	rules := make([]Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, Rule{
			Category: models.Category(strings.ToLower(r.Category)),
			Keywords: r.Keywords,
		})
	}
	return rules
}

// Categorizer assigns app categories by ordered keyword matching.
type Categorizer struct {
	rules []Rule
}

func NewCategorizer(rules []Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Categorizer{rules: rules}
}

// Categorize maps an app name to its category. Matching is case-insensitive
// substring containment; unmatched names fall through to "other".
func (c *Categorizer) Categorize(appName string) models.Category {
	name := strings.ToLower(appName)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(name, keyword) {
				return rule.Category
			}
		}
	}

	return models.CategoryOther
}
