package ranking

import "errors"

// Messages are part of the program's output contract and stay in Japanese.
var (
	ErrArgumentCount = errors.New("入力引数の数が不正です。")
	ErrInvalidMode   = errors.New("不正な集計モードが指定されています。")

	ErrEntryNotFound  = errors.New("ゲームのエントリーファイルが存在しません。")
	ErrEntryHeader    = errors.New("エントリーファイルのヘッダーが正しくありません。")
	ErrEntryColumns   = errors.New("エントリーファイルの要素数が正しくありません。")
	ErrEntryTimestamp = errors.New("エントリーファイルのcreate_timestamp列に不正な値が含まれています。")
	ErrHandleName     = errors.New("ハンドルネームに不正な文字列が含まれています。")

	ErrScoreNotFound  = errors.New("ゲームのプレイログファイルが存在しません。")
	ErrScoreHeader    = errors.New("プレイログファイルのヘッダーが正しくありません。")
	ErrScoreColumns   = errors.New("プレイログファイルの要素数が正しくありません。")
	ErrScoreTimestamp = errors.New("プレイログファイルのcreate_timestamp列に不正な値が含まれています。")
	ErrScoreValue     = errors.New("プレイログファイルのスコアに不正な値が含まれています。")

	ErrPlayerID = errors.New("プレイヤーIDに不正な文字列が含まれています。")
)
