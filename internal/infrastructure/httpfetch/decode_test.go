package httpfetch

import (
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestDecodeChain(t *testing.T) {
	t.Parallel()

	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("财经新闻：央行宣布降准"))
	require.NoError(t, err)

	tests := []struct {
		name        string
		raw         []byte
		contentType string
		wantText    string
		wantEnc     string
	}{
		{
			name:     "plain utf-8",
			raw:      []byte("科技新闻 headline"),
			wantText: "科技新闻 headline",
			wantEnc:  "utf-8",
		},
		{
			name:     "undeclared gbk",
			raw:      gbk,
			wantText: "财经新闻：央行宣布降准",
			wantEnc:  "gbk",
		},
		{
			name:        "declared gbk",
			raw:         gbk,
			contentType: "text/html; charset=GBK",
			wantText:    "财经新闻：央行宣布降准",
			wantEnc:     "gbk",
		},
		{
			name:     "latin-1 fallback",
			raw:      []byte("caf\xe9 au lait"),
			wantText: "café au lait",
			wantEnc:  "latin-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text, enc := Decode(tt.raw, tt.contentType, DefaultEncodings)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantEnc, enc)
		})
	}
}

func TestDecodeFallsBackToLossy(t *testing.T) {
	t.Parallel()

	text, enc := Decode([]byte("ok \xff\xfe end"), "", []string{"utf-8"})
	assert.Equal(t, LossyEncoding, enc)
	assert.True(t, utf8.ValidString(text))
	assert.Contains(t, text, "ok ")
	assert.Contains(t, text, " end")
}

func TestDecodeNeverFails(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		raw := make([]byte, rnd.IntN(256))
		for j := range raw {
			raw[j] = byte(rnd.UintN(256))
		}
		text, enc := Decode(raw, "", DefaultEncodings)
		assert.NotEmpty(t, enc)
		assert.True(t, utf8.ValidString(text))
	}
}

func TestDecodeSkipsUnknownLabels(t *testing.T) {
	t.Parallel()

	text, enc := Decode([]byte("hello"), "text/html; charset=bogus", []string{"no-such-charset", "utf-8"})
	assert.Equal(t, "hello", text)
	assert.Equal(t, "utf-8", enc)
}
