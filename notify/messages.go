package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a user-facing message
type Key string

const (
	MsgTableCreated   Key = "table.created"
	MsgTableUpdated   Key = "table.updated"
	MsgTableNotFound  Key = "table.not_found"
	MsgPrecondition   Key = "host.precondition"
	MsgMalformedTable Key = "table.malformed"
	MsgInvalidConfig  Key = "config.invalid"
	MsgTableWarnings  Key = "table.updated_with_warnings"
	MsgFailed         Key = "failed"
)

var supported = []language.Tag{language.English, language.Japanese}

var translations = map[Key][2]string{
	MsgTableCreated: {
		"Table created. After moving a divider, select any part of the table and run again to update the layout.",
		"テーブルを作成しました。境界線を動かした後、テーブルのいずれかの部分を選択して再度このスクリプトを実行するとレイアウトが更新されます。",
	},
	MsgTableUpdated: {
		"Table layout updated.",
		"テーブルのレイアウトを更新しました。",
	},
	MsgTableNotFound: {
		"Could not find table elements.",
		"テーブルの要素が見つかりませんでした。",
	},
	MsgPrecondition: {
		"This script requires a newer version of Excalidraw. Please install the latest version.",
		"このスクリプトは、より新しいバージョンのExcalidrawが必要です。最新版をインストールしてください。",
	},
	MsgMalformedTable: {
		"The table layout cannot be read: %s",
		"テーブルの構造を読み取れません: %s",
	},
	MsgInvalidConfig: {
		"Invalid table settings: %s",
		"テーブルの設定が正しくありません: %s",
	},
	MsgTableWarnings: {
		"Table layout updated with %d warning(s).",
		"テーブルのレイアウトを更新しました（警告 %d 件）。",
	},
	MsgFailed: {
		"Operation failed: %s",
		"処理に失敗しました: %s",
	},
}

var messages = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range translations {
		for i, tag := range supported {
			if err := b.SetString(tag, string(key), text[i]); err != nil {
				panic("notify: bad message " + string(key) + ": " + err.Error())
			}
		}
	}
	return b
}

var matcher = language.NewMatcher(supported)

// Localizer renders messages in one language
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer picks the supported language closest to lang (a BCP 47 tag
// such as "ja" or "en-GB"). Unknown or empty input selects English.
func NewLocalizer(lang string) *Localizer {
	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Language returns the selected language
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Text renders a message
func (l *Localizer) Text(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}
