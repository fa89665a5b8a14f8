package service

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("policy.PDF"))
	assert.True(t, Allowed("notes.txt"))
	assert.True(t, Allowed("handbook.docx"))
	assert.False(t, Allowed("image.png"))
	assert.False(t, Allowed("noext"))
}

func TestChunk(t *testing.T) {
	assert.Nil(t, Chunk("   ", 10, 2))
	assert.Equal(t, []string{"short"}, Chunk("short", 10, 2))

	text := strings.Repeat("word ", 100) // 500 символов
	parts := Chunk(text, 100, 20)
	require.Greater(t, len(parts), 4)
	for _, p := range parts {
		assert.LessOrEqual(t, len([]rune(p)), 100)
		assert.False(t, strings.HasPrefix(p, " "))
	}
	// перекрытие: начало второго фрагмента повторяет конец первого
	assert.True(t, strings.HasSuffix(parts[0], parts[1][:10]) || strings.Contains(parts[0], parts[1][:10]))
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body +
		`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	txt, err := ExtractText("a.txt", []byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, "plain text", txt)

	doc := buildDocx(t, `<w:p><w:r><w:t>Leave policy</w:t></w:r></w:p><w:p><w:r><w:t>20 days</w:t><w:tab/><w:t>paid</w:t></w:r></w:p>`)
	txt, err = ExtractText("a.docx", doc)
	require.NoError(t, err)
	assert.Equal(t, "Leave policy\n20 days\tpaid", txt)

	_, err = ExtractText("a.docx", []byte("not a zip"))
	assert.Error(t, err)
	_, err = ExtractText("a.pdf", []byte("not a pdf"))
	assert.Error(t, err)
	_, err = ExtractText("a.png", nil)
	assert.Error(t, err)
}
