// Package preprocessing はscikit-learn互換の前処理コンポーネントを提供する
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/parkcast/core/model"
	"github.com/YuminosukeSato/parkcast/pkg/errors"
)

// 未知カテゴリの扱い方
const (
	// HandleUnknownError は未知カテゴリをエラーとして扱う
	HandleUnknownError = "error"
	// HandleUnknownIgnore は未知カテゴリをゼロベクトルとしてエンコードする
	HandleUnknownIgnore = "ignore"
)

// OneHotEncoder はscikit-learn互換のワンホットエンコーダー。
// 単一のカテゴリカル列を指示変数（インジケータ）行列に変換する。
// 語彙はFit時に観測された値から出現順で確定し、以降は変更されない。
type OneHotEncoder struct {
	model.BaseEstimator

	// HandleUnknown は未知カテゴリの扱い方 ("error" または "ignore")
	HandleUnknown string

	// Categories はFit時に確定した語彙（出現順）
	Categories []string

	index map[string]int
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// デフォルトでは未知カテゴリはエラーになる。学習時に存在しなかった
// カテゴリをゼロベクトルとして受け入れる場合は
// WithHandleUnknown(HandleUnknownIgnore) を使う。
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder().WithHandleUnknown(preprocessing.HandleUnknownIgnore)
//	err := enc.Fit([]string{"WD", "SA", "SU"})
//	X, err := enc.Transform([]string{"SA", "HOLIDAY"}) // 2行目はゼロベクトル
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{
		HandleUnknown: HandleUnknownError,
	}
}

// WithHandleUnknown は未知カテゴリの扱い方を設定する
func (e *OneHotEncoder) WithHandleUnknown(mode string) *OneHotEncoder {
	e.HandleUnknown = mode
	return e
}

// Fit は訓練データから語彙を学習する。
// 語彙は値の出現順で固定され、重複は無視される。
func (e *OneHotEncoder) Fit(values []string) error {
	if e.HandleUnknown != HandleUnknownError && e.HandleUnknown != HandleUnknownIgnore {
		return errors.NewValidationError("HandleUnknown", "must be \"error\" or \"ignore\"", e.HandleUnknown)
	}
	if len(values) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.Categories = e.Categories[:0]
	e.index = make(map[string]int)
	for _, v := range values {
		if _, seen := e.index[v]; !seen {
			e.index[v] = len(e.Categories)
			e.Categories = append(e.Categories, v)
		}
	}

	e.SetFitted()
	return nil
}

// Transform は学習済みの語彙を使って値を指示変数行列に変換する。
// 戻り値は len(values) × len(Categories) の行列で、各行は該当カテゴリの
// 位置のみが1となる。語彙に存在しない値はHandleUnknownに従って、
// ゼロベクトル（"ignore"、警告を発生）またはエラー（"error"）となる。
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(values) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}

	result := mat.NewDense(len(values), len(e.Categories), nil)
	for i, v := range values {
		j, known := e.index[v]
		if !known {
			if e.HandleUnknown == HandleUnknownError {
				return nil, errors.NewValueError("OneHotEncoder.Transform",
					fmt.Sprintf("found unknown category %q during transform", v))
			}
			// 行はゼロベクトルのまま
			errors.Warn(errors.NewUnknownCategoryWarning("OneHotEncoder", v))
			continue
		}
		result.Set(i, j, 1)
	}

	return result, nil
}

// FitTransform は訓練データで語彙を学習し、同じデータを変換する
func (e *OneHotEncoder) FitTransform(values []string) (*mat.Dense, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// NumCategories は学習済み語彙のサイズを返す
func (e *OneHotEncoder) NumCategories() int {
	return len(e.Categories)
}

// GetParams はエンコーダーのパラメータを取得する
func (e *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"handle_unknown": e.HandleUnknown,
	}
}

// String はエンコーダーの文字列表現を返す
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(handle_unknown=%q)", e.HandleUnknown)
	}
	return fmt.Sprintf("OneHotEncoder(handle_unknown=%q, n_categories=%d)",
		e.HandleUnknown, len(e.Categories))
}
