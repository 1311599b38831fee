package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should create translations from the embedded catalog", func(t *testing.T) {
		trans, err := NewTranslations("en")

		assert.NoError(t, err)
		assert.NotNil(t, trans)
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("should change to a registered language", func(t *testing.T) {
		trans, err := NewTranslations("en")
		assert.NoError(t, err)

		err = trans.SetLanguage("en")
		assert.NoError(t, err)
	})

	t.Run("should fail with unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("en")
		assert.NoError(t, err)

		err = trans.SetLanguage("fr")
		assert.Error(t, err)
	})
}

func TestGetMessage(t *testing.T) {
	t.Run("should resolve a plain message", func(t *testing.T) {
		trans, err := NewTranslations("en")
		assert.NoError(t, err)

		result := trans.GetMessage("ticket_none", 0, nil)

		assert.Equal(t, "No tickets recorded yet", result)
	})

	t.Run("should render template data", func(t *testing.T) {
		trans, err := NewTranslations("en")
		assert.NoError(t, err)

		result := trans.GetMessage("ticket_saved", 0, map[string]interface{}{
			"ID": "TCK-1A2B3C4D",
		})

		assert.Equal(t, "Ticket saved: TCK-1A2B3C4D", result)
	})

	t.Run("should report missing messages", func(t *testing.T) {
		trans, err := NewTranslations("en")
		assert.NoError(t, err)

		result := trans.GetMessage("NonExistent", 1, nil)

		assert.Equal(t, "Translation missing: NonExistent", result)
	})
}
