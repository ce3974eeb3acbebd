package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

func TestCategorize_KnownApps(t *testing.T) {
	c := NewCategorizer(nil)

	tests := []struct {
		appName  string
		expected models.Category
	}{
		{"vs code", models.CategoryProductive},
		{"VS Code", models.CategoryProductive},
		{"instagram", models.CategorySocial},
		{"youtube", models.CategoryEntertainment},
		{"netflix", models.CategoryEntertainment},
		{"whatsapp", models.CategorySocial},
		{"some-random-app", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.appName, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Categorize(tt.appName))
		})
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	c := NewCategorizer(nil)

	// chrome appears in both the productive and browser lists; the
	// productive rule comes first, and extra words change nothing.
	assert.Equal(t, models.CategoryProductive, c.Categorize("Chrome Social Browser"))
	assert.Equal(t, models.CategoryProductive, c.Categorize("chrome"))
	assert.Equal(t, models.CategoryProductive, c.Categorize("slack"))
}

func TestCategorize_SubstringMatch(t *testing.T) {
	c := NewCategorizer(nil)

	assert.Equal(t, models.CategoryProductive, c.Categorize("google chrome - work tab"))
	assert.Equal(t, models.CategoryEntertainment, c.Categorize("youtube music"))
}

func TestRulesFromConfig(t *testing.T) {
	t.Run("empty config falls back to defaults", func(t *testing.T) {
		rules := RulesFromConfig(config.CategorizerConfig{})
		assert.Equal(t, DefaultRules(), rules)
	})

	t.Run("configured rules replace defaults", func(t *testing.T) {
		rules := RulesFromConfig(config.CategorizerConfig{
			Rules: []config.CategoryRule{
				{Category: "Social", Keywords: []string{"chrome"}},
			},
		})
		c := NewCategorizer(rules)

		assert.Equal(t, models.CategorySocial, c.Categorize("chrome"))
		assert.Equal(t, models.CategoryOther, c.Categorize("vs code"))
	})
}
