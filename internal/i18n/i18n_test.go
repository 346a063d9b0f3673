// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("pt_BR"))

	assert.ElementsMatch(t, []string{"en", "pt_BR"}, GetSupportedLanguages())
	assert.Equal(t, "pt_BR", DefaultLanguage())

	t.Run("every key exists in every locale", func(t *testing.T) {
		en := instance.translations["en"]
		pt := instance.translations["pt_BR"]
		require.NotEmpty(t, en)
		for key := range en {
			assert.Contains(t, pt, key)
		}
		for key := range pt {
			assert.Contains(t, en, key)
		}
	})

	t.Run("formatting", func(t *testing.T) {
		assert.Equal(t,
			"Data imported successfully! 2 new products added, 3 products updated.",
			T("en", KeyDataImported, 2, 3))
	})

	t.Run("unknown language falls back to default", func(t *testing.T) {
		assert.Equal(t, T("pt_BR", KeyProductNotFound), T("fr", KeyProductNotFound))
	})

	t.Run("unknown key is returned as is", func(t *testing.T) {
		assert.Equal(t, "no.such.key", T("en", "no.such.key"))
	})
}
