// Package dto はplacesフィーチャーのリクエスト／レスポンス型を定義します。
package dto

// CreatePlaceReq は場所作成のmultipartフォームです。画像は "image" フィールドで送ります。
type CreatePlaceReq struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description" binding:"required,min=5"`
	Address     string `form:"address" json:"address" binding:"required"`
}

// UpdatePlaceReq はタイトルと説明の更新リクエストです。
type UpdatePlaceReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}
