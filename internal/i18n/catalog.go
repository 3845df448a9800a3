package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	keyErrorZeroStatusCode = "ERROR_ZERO_STATUS_CODE"
	keyNonZeroStatusCode   = "NON_ZERO_STATUS_CODE"
	keyTimeout             = "TIMEOUT"
	keyProcessStart        = "PROCESS_START_FAILED"
	keyLineMismatch        = "OUTPUT_LINE_MISMATCH"
	keyLineCount           = "OUTPUT_LINE_COUNT"
	keyExpectedUnreadable  = "EXPECTED_OUTPUT_UNREADABLE"
	keyAbnormalEnd         = "ABNORMAL_END"
	keyLabelInput          = "LABEL_INPUT"
	keyLabelExpected       = "LABEL_EXPECTED"
	keyLabelStatus         = "LABEL_STATUS"
	keyLabelStdout         = "LABEL_STDOUT"
	keyLabelStderr         = "LABEL_STDERR"
	keyPassed              = "PASSED"
	keyFailed              = "FAILED"
)

var tags = map[string]language.Tag{
	"ja": language.Japanese,
	"en": language.English,
}

var messages = map[language.Tag]map[string]string{
	language.Japanese: {
		keyErrorZeroStatusCode: "ステータスコードが異常終了 (0 以外) ではありません",
		keyNonZeroStatusCode:   "ステータスコードが 0 ではありません (%d)",
		keyTimeout:             "タイムアウトしました (%d ms)",
		keyProcessStart:        "プログラムを実行できません: %s",
		keyLineMismatch:        "%d 行目が期待値と一致しません",
		keyLineCount:           "出力の行数が期待値と異なります (期待値: %d 行, 実際: %d 行)",
		keyExpectedUnreadable:  "期待値ファイルを読み込めません: %s",
		keyAbnormalEnd:         "プログラムが異常終了しました",
		keyLabelInput:          "入力",
		keyLabelExpected:       "期待値",
		keyLabelStatus:         "ステータスコード",
		keyLabelStdout:         "標準出力",
		keyLabelStderr:         "標準エラー出力",
		keyPassed:              "成功",
		keyFailed:              "失敗",
	},
	language.English: {
		keyErrorZeroStatusCode: "Exit status should not be 0.",
		keyNonZeroStatusCode:   "Exit status is not 0 (%d).",
		keyTimeout:             "Timed out after %d ms.",
		keyProcessStart:        "Could not execute the program: %s",
		keyLineMismatch:        "Line %d does not match the expected output.",
		keyLineCount:           "Output line count differs (expected: %d, actual: %d).",
		keyExpectedUnreadable:  "Could not read the expected output: %s",
		keyAbnormalEnd:         "The program ended abnormally",
		keyLabelInput:          "Input",
		keyLabelExpected:       "Expected",
		keyLabelStatus:         "Exit status",
		keyLabelStdout:         "Stdout",
		keyLabelStderr:         "Stderr",
		keyPassed:              "passed",
		keyFailed:              "failed",
	},
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}
