package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	data, err := ParseCallback(EncodeCallback(ActionExport, "pdf"))
	require.NoError(t, err)
	assert.Equal(t, &CallbackData{Action: ActionExport, Value: "pdf"}, data)

	data, err = ParseCallback("export:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", data.Value)
}

func TestParseCallbackInvalid(t *testing.T) {
	for _, raw := range []string{"", "export", ":pdf"} {
		_, err := ParseCallback(raw)
		assert.Error(t, err, raw)
	}
}

func TestExportKeyboard(t *testing.T) {
	markup := NewBuilder().ExportKeyboard()

	require.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	require.Len(t, row, 4)

	var values []string
	for _, button := range row {
		require.NotNil(t, button.CallbackData)
		data, err := ParseCallback(*button.CallbackData)
		require.NoError(t, err)
		assert.Equal(t, ActionExport, data.Action)
		values = append(values, data.Value)
	}
	assert.Equal(t, []string{"markdown", "docx", "pdf", "html"}, values)
}
