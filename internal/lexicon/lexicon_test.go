package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsHarvester/internal/domain"
)

func TestBuiltInLexiconsAreConsistent(t *testing.T) {
	t.Parallel()

	for _, mode := range []domain.Mode{domain.ModeTech, domain.ModeFinance} {
		lex := ForMode(mode)
		require.NoError(t, lex.Validate(), mode)
		assert.Equal(t, mode, lex.Mode)
	}
}

func TestTechImportanceDoesNotMatchInsideBrandNames(t *testing.T) {
	t.Parallel()

	title := strings.ToLower("OpenAI 发布 GPT-5，性能大幅突破")
	total := 0
	for _, term := range Tech().Importance {
		if strings.Contains(title, strings.ToLower(term.Text)) {
			total += term.Weight
		}
	}
	assert.Equal(t, 5+3+4+4, total)
}

func TestValidateRejectsDanglingReferences(t *testing.T) {
	t.Parallel()

	lex := Tech()
	lex.Entities = append(lex.Entities, EntityGroup{Name: "x", Category: "体育", Weight: 1})
	assert.Error(t, lex.Validate())

	lex = Finance()
	lex.RiskCategory = "missing"
	assert.Error(t, lex.Validate())

	lex = Tech()
	lex.Fallback = ""
	assert.Error(t, lex.Validate())
}

func TestLoadOverlaysSections(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fallback: 未分类
importance:
  - text: Rust
    weight: 7
reputation:
  LWN: 4
`), 0o600))

	lex, err := Load(path, Tech())
	require.NoError(t, err)

	assert.Equal(t, "未分类", lex.Fallback)
	assert.Equal(t, []Term{{Text: "Rust", Weight: 7}}, lex.Importance)
	assert.Equal(t, map[string]int{"LWN": 4}, lex.Reputation)
	assert.Equal(t, Tech().CategoryNames(), lex.CategoryNames())
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
boosts:
  - category: 不存在
    weight: 5
    keywords: [x]
`), 0o600))

	_, err := Load(path, Tech())
	assert.Error(t, err)
}

func TestLoadEmptyPathReturnsBase(t *testing.T) {
	t.Parallel()

	lex, err := Load("", Finance())
	require.NoError(t, err)
	assert.Equal(t, "其他", lex.Fallback)
	assert.True(t, lex.HasCategory("风险预警"))
}
