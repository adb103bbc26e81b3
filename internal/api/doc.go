// Package api 定義投票系統的 HTTP 路由與處理器。
//
// 路由分為公開（註冊、登入、健康檢查）與需要驗證兩組，
// 投票的建立與結束僅限管理員，投下選票僅限投票者。
// 處理器將請求轉換為服務層調用，並把領域錯誤對應回 HTTP 狀態碼。
package api
