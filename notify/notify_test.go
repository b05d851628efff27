package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLocalizerLanguages(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"en", language.English},
		{"ja", language.Japanese},
		{"ja-JP", language.Japanese},
		{"en-GB", language.English},
		{"", language.English},
		{"not a tag!", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLocalizer(tt.lang).Language())
		})
	}
}

func TestLocalizerText(t *testing.T) {
	en := NewLocalizer("en")
	ja := NewLocalizer("ja")

	assert.Equal(t, "Could not find table elements.", en.Text(MsgTableNotFound))
	assert.Equal(t, "テーブルのレイアウトを更新しました。", ja.Text(MsgTableUpdated))
	assert.Equal(t, "Table layout updated with 3 warning(s).", en.Text(MsgTableWarnings, 3))
	assert.Equal(t, "The table layout cannot be read: row: coordinate is not finite",
		en.Text(MsgMalformedTable, "row: coordinate is not finite"))
	assert.Equal(t, "Invalid table settings: rows must be positive", en.Text(MsgInvalidConfig, "rows must be positive"))
}

func TestEveryMessageTranslated(t *testing.T) {
	en := NewLocalizer("en")
	ja := NewLocalizer("ja")
	for key := range translations {
		assert.NotEqual(t, string(key), en.Text(key, 1), "english %s", key)
		assert.NotEqual(t, en.Text(key, 1), ja.Text(key, 1), "japanese %s", key)
	}
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf, NewLocalizer("en"))
	n.Notify(context.Background(), Info(MsgTableUpdated))
	n.Notify(context.Background(), Error(MsgTableNotFound))
	assert.Equal(t, "Table layout updated.\nCould not find table elements.\n", buf.String())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := NewLogNotifier(logger, NewLocalizer("en"))

	n.Notify(context.Background(), Warn(MsgTableWarnings, 2))
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="Table layout updated with 2 warning(s)."`)
	assert.Contains(t, out, "message_key=table.updated_with_warnings")

	// nil logger is accepted
	NewLogNotifier(nil, NewLocalizer("en")).Notify(context.Background(), Info(MsgTableUpdated))
}

func TestRecorderAndMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	n := Multi(a, b, Discard)

	n.Notify(context.Background(), Info(MsgTableCreated))
	n.Notify(context.Background(), Error(MsgFailed, "boom"))

	require.Len(t, a.Notices(), 2)
	assert.Equal(t, []Key{MsgTableCreated, MsgFailed}, b.Keys())
	assert.Equal(t, slog.LevelError, a.Notices()[1].Level)
	assert.Equal(t, []any{"boom"}, a.Notices()[1].Args)
}
